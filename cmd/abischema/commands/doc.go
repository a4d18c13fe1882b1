// Package commands implements the abischema command line interface.
package commands
