// Package cli implements the hydrate command line tool.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	hydrate "github.com/goliatone/go-hydrate"
	"github.com/goliatone/go-hydrate/internal/logging"
	"github.com/goliatone/go-hydrate/internal/prompt"
	"github.com/goliatone/go-hydrate/pkg/hooks"
	"github.com/goliatone/go-hydrate/pkg/model"
	pkgopenapi "github.com/goliatone/go-hydrate/pkg/openapi"
	"github.com/goliatone/go-hydrate/pkg/schema"
	"github.com/goliatone/go-hydrate/pkg/source"
)

var version = "dev"

// Settings is the merged view of flags, HYDRATE_* environment variables and
// the optional config file.
type Settings struct {
	Schemas     []string      `mapstructure:"schema"`
	OpenAPI     []string      `mapstructure:"openapi"`
	Components  []string      `mapstructure:"components"`
	LogLevel    string        `mapstructure:"log-level"`
	LogFormat   string        `mapstructure:"log-format"`
	AllowHTTP   bool          `mapstructure:"allow-http"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Data        string        `mapstructure:"data"`
	Output      string        `mapstructure:"output"`
	Sanitize    bool          `mapstructure:"sanitize"`
	Interactive bool          `mapstructure:"interactive"`
	Meta        bool          `mapstructure:"meta"`
}

// Options wires the command to its environment.
type Options struct {
	In     io.Reader
	Out    io.Writer
	Err    io.Writer
	Prompt prompt.Driver
}

type app struct {
	opts     Options
	v        *viper.Viper
	cfgFile  string
	settings Settings
	logger   zerolog.Logger
}

// NewRootCommand builds the command tree. Zero Options use the process
// stdio and a survey prompt driver.
func NewRootCommand(opts Options) *cobra.Command {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	if opts.Prompt == nil {
		opts.Prompt = prompt.NewSurveyDriver()
	}

	a := &app{opts: opts, v: viper.New(), logger: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "hydrate",
		Short: "Hydrate model types declared in YAML, JSON or OpenAPI documents",
		Long: `hydrate builds model types from type definition documents or OpenAPI
component schemas and hydrates instances from JSON or YAML data.

Settings can be given as flags, HYDRATE_* environment variables
(HYDRATE_LOG_LEVEL=debug) or a .hydrate.yaml config file.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "", "config file (default: ./.hydrate.yaml)")
	flags.StringSliceP("schema", "s", nil, "type definition document, file or URL (repeatable)")
	flags.StringSlice("openapi", nil, "OpenAPI document to import component schemas from (repeatable)")
	flags.StringSlice("components", nil, "limit the OpenAPI import to these components")
	flags.String("log-level", "warn", "log level (trace, debug, info, warn, error)")
	flags.String("log-format", "console", "log format (console, json)")
	flags.Bool("allow-http", false, "allow loading documents over HTTP")
	flags.Duration("timeout", 30*time.Second, "timeout for loading documents")

	root.AddCommand(newFillCommand(a), newCheckCommand(a), newTypesCommand(a))

	root.SetIn(opts.In)
	root.SetOut(opts.Out)
	root.SetErr(opts.Err)
	return root
}

// Execute runs the command tree with process stdio.
func Execute(ctx context.Context) error {
	root := NewRootCommand(Options{})
	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
	}
	return err
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	v := a.v
	v.SetEnvPrefix("HYDRATE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("bind flags: %w", err)
	}

	if a.cfgFile != "" {
		v.SetConfigFile(a.cfgFile)
	} else {
		v.SetConfigName(".hydrate")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(&a.settings); err != nil {
		return fmt.Errorf("decode settings: %w", err)
	}

	level, err := logging.ParseLevel(a.settings.LogLevel)
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(a.settings.LogFormat)
	if err != nil {
		return err
	}
	a.logger = logging.New().FromWriter(a.opts.Err).WithLevel(level).WithFormat(format).Make()

	if used := v.ConfigFileUsed(); used != "" {
		a.logger.Debug().Str("config", used).Msg("loaded config file")
	}
	return nil
}

func (a *app) loadCatalog(ctx context.Context) (*schema.Catalog, error) {
	if len(a.settings.Schemas) == 0 && len(a.settings.OpenAPI) == 0 {
		return nil, errors.New("no documents given, use --schema or --openapi")
	}

	schemas, err := parseSources(a.settings.Schemas)
	if err != nil {
		return nil, err
	}
	specs, err := parseSources(a.settings.OpenAPI)
	if err != nil {
		return nil, err
	}

	catalogOptions := []schema.CatalogOption{
		schema.WithLogger(a.logger),
		schema.WithRegistry(model.NewRegistry(model.WithLogger(a.logger))),
	}
	if a.settings.Sanitize {
		catalogOptions = append(catalogOptions, schema.WithCommonTypeOptions(model.WithBeforeFill(hooks.SanitizeHTML())))
	}

	loaderOptions := []source.LoaderOption{}
	if a.settings.AllowHTTP {
		loaderOptions = append(loaderOptions, source.WithHTTPFallback(a.settings.Timeout))
	}

	catalog, err := hydrate.LoadCatalog(ctx, hydrate.LoadRequest{
		Schemas:         schemas,
		OpenAPI:         specs,
		LoaderOptions:   loaderOptions,
		ImporterOptions: []pkgopenapi.ImporterOption{pkgopenapi.WithComponents(a.settings.Components...), pkgopenapi.WithLogger(a.logger)},
		CatalogOptions:  catalogOptions,
	})
	if err != nil {
		return nil, err
	}

	a.logger.Debug().Strs("types", catalog.List()).Msg("catalog ready")
	return catalog, nil
}

func (a *app) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if a.settings.Timeout > 0 {
		return context.WithTimeout(ctx, a.settings.Timeout)
	}
	return context.WithCancel(ctx)
}

func parseSources(locations []string) ([]source.Source, error) {
	out := make([]source.Source, 0, len(locations))
	for _, location := range locations {
		src, err := source.Parse(location)
		if err != nil {
			return nil, err
		}
		out = append(out, src)
	}
	return out, nil
}
