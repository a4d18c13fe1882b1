package commands

type RootArgs struct {
	logLevel   *string
	logFormat  *string
	configFile *string
	noColor    *bool
}

func NewRootArgs() *RootArgs {
	return &RootArgs{
		logLevel:   new(string),
		logFormat:  new(string),
		configFile: new(string),
		noColor:    new(bool),
	}
}

func (a *RootArgs) GetLogLevel() string {
	return *a.logLevel
}

func (a *RootArgs) GetLogFormat() string {
	return *a.logFormat
}

func (a *RootArgs) GetConfigFile() string {
	return *a.configFile
}

func (a *RootArgs) GetNoColor() bool {
	return *a.noColor
}
