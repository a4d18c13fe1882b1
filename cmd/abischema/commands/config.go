package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/MacroPower/abischema/pkg/abierrors"
	"github.com/MacroPower/abischema/pkg/abifetch"
	"github.com/MacroPower/abischema/pkg/jsonschema"
	"github.com/MacroPower/abischema/pkg/typegen"
)

// EnvPrefix is the prefix of environment variables overriding flags, e.g.
// ABISCHEMA_NETWORK.
const EnvPrefix = "ABISCHEMA"

const defaultTimeout = 2 * time.Minute

// Config holds the settings of the generate, schema and inspect commands.
// Values are layered from flags, ABISCHEMA_* environment variables, the
// --config file and defaults, in that order of precedence.
type Config struct {
	Output      string        `json:"output,omitempty"       jsonschema:"description=Output file path. Defaults to ./contract_types.<ext>." mapstructure:"output"`
	Target      string        `json:"target,omitempty"       jsonschema:"description=Compiler target.,enum=typescript,enum=kcl,enum=jsonschema,default=typescript" mapstructure:"target"`
	TypeName    string        `json:"type_name,omitempty"    jsonschema:"description=Name of the root type.,default=ContractCallArgs" mapstructure:"type_name"`
	Network     string        `json:"network,omitempty"      jsonschema:"description=NEAR network to download from.,default=mainnet" mapstructure:"network"`
	Source      string        `json:"source,omitempty"       jsonschema:"description=How to download ABIs.,enum=near-cli,enum=rpc,default=near-cli" mapstructure:"source"`
	RPCURL      string        `json:"rpc_url,omitempty"      jsonschema:"description=JSON-RPC endpoint overriding the network default." mapstructure:"rpc_url"`
	NearCLI     string        `json:"near_cli,omitempty"     jsonschema:"description=Path to the near CLI.,default=near" mapstructure:"near_cli"`
	JSON2TS     string        `json:"json2ts,omitempty"      jsonschema:"description=Path to json2ts.,default=json2ts" mapstructure:"json2ts"`
	DownloadDir string        `json:"download_dir,omitempty" jsonschema:"description=Directory downloaded ABIs are saved to.,default=." mapstructure:"download_dir"`
	Format      string        `json:"format,omitempty"       jsonschema:"description=Schema encoding of the schema command.,enum=json,enum=yaml,default=json" mapstructure:"format"`
	Timeout     time.Duration `json:"timeout,omitempty"      jsonschema:"description=Timeout for external tools and requests (e.g. 30s).,type=string" mapstructure:"timeout"`
	MaxDepth    int           `json:"max_depth,omitempty"    jsonschema:"description=Maximum type schema nesting depth.,minimum=1,default=64" mapstructure:"max_depth"`
	Strict      bool          `json:"strict,omitempty"       jsonschema:"description=Fail on translation warnings." mapstructure:"strict"`
	Quiet       bool          `json:"quiet,omitempty"        jsonschema:"description=Disable the interactive progress display." mapstructure:"quiet"`
}

// FetcherOptions returns the [abifetch.Options] of the configuration.
func (c *Config) FetcherOptions() abifetch.Options {
	return abifetch.Options{
		NearCLI: c.NearCLI,
		Network: c.Network,
		RPCURL:  c.RPCURL,
		Timeout: c.Timeout,
	}
}

// CompilerOptions returns the [typegen.Options] of the configuration.
func (c *Config) CompilerOptions() typegen.Options {
	return typegen.Options{
		JSON2TS: c.JSON2TS,
		Format:  c.Format,
		Timeout: c.Timeout,
	}
}

func addFetchFlags(flags *pflag.FlagSet) {
	flags.String("network", abifetch.DefaultNetwork, "NEAR network to download ABIs from (mainnet, testnet)")
	flags.String("source", abifetch.SourceNearCLI, "How to download ABIs (near-cli, rpc)")
	flags.String("rpc_url", "", "JSON-RPC endpoint, overrides the network default")
	flags.String("near_cli", abifetch.DefaultNearBinary, "Path to the near CLI")
	flags.String("download_dir", ".", "Directory downloaded ABIs are saved to")
	flags.Int("max_depth", jsonschema.DefaultMaxDepth, "Maximum type schema nesting depth")
	flags.Duration("timeout", defaultTimeout, "Timeout for external tools and requests")
	flags.Bool("strict", false, "Fail on translation warnings")
}

func addGenerateFlags(cmd *cobra.Command) {
	flags := cmd.Flags()

	addFetchFlags(flags)

	flags.StringP("output", "o", "", "Output file (default ./contract_types.<ext>)")
	flags.String("target", string(typegen.DefaultTarget), "Compiler target (typescript, kcl, jsonschema)")
	flags.String("type_name", jsonschema.DefaultRootName, "Name of the root type")
	flags.String("json2ts", typegen.DefaultJSON2TS, "Path to json2ts (json-schema-to-typescript)")
	flags.BoolP("quiet", "q", false, "Disable the interactive progress display")

	must(cmd.MarkFlagFilename("output"))
	must(cmd.MarkFlagDirname("download_dir"))
}

// loadConfig layers the command's flags, the environment and the config file
// into a [Config].
func loadConfig(cmd *cobra.Command, args *RootArgs) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("%w: bind flags: %w", abierrors.ErrInvalidArguments, err)
	}

	if path := args.GetConfigFile(); path != "" {
		v.SetConfigFile(path)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%w: read config %q: %w", abierrors.ErrInvalidArguments, path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: decode config: %w", abierrors.ErrInvalidArguments, err)
	}

	return cfg, nil
}
