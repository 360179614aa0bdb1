package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"steward/codec"
	"steward/internal/schemafile"
	"steward/plain"
	"steward/record"
)

// app carries what every subcommand needs once flags and config are
// resolved.
type app struct {
	configFile string
	cfg        config
	logger     zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "steward",
		Short: "Check and normalize documents against record schemas",
		Long: `steward maps YAML and JSON documents onto record types declared in a
schema file. It reports unknown keys and missing slots, fills in defaults
and resolves paths through nested records and collections.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default: ./steward.yaml)")
	flags.String("schema", "", "schema file declaring the record types")
	flags.String("type", "", "record type of the document")
	flags.String("format", "", "output format: yaml or json (default: from file extension)")
	flags.String("log-level", defaultLogLevel, "log level: debug, info, warn, error")

	root.AddCommand(
		newCheckCmd(a),
		newNormalizeCmd(a),
		newGetCmd(a),
		newDumpCmd(a),
		newVersionCmd(),
	)

	return root
}

func (a *app) init(cmd *cobra.Command) error {
	if cmd.Name() == "version" {
		return nil
	}

	cfg, err := loadConfig(a.configFile, cmd.Root().PersistentFlags())
	if err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	a.cfg = cfg
	a.logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.TimeOnly}).
		Level(level).
		With().Timestamp().
		Logger()

	a.logger.Debug().
		Str("schema", cfg.Schema).
		Str("type", cfg.Type).
		Str("format", cfg.Format).
		Msg("configuration loaded")

	return nil
}

// recordType compiles the configured schema and looks up the configured
// type.
func (a *app) recordType() (*record.Type, error) {
	if a.cfg.Schema == "" {
		return nil, errors.New("no schema given: use --schema or set schema in steward.yaml")
	}

	if a.cfg.Type == "" {
		return nil, errors.New("no type given: use --type or set type in steward.yaml")
	}

	reg, err := schemafile.Load(a.cfg.Schema, a.logger)
	if err != nil {
		return nil, err
	}

	return reg.Get(a.cfg.Type)
}

// format returns the configured output format, or zero to let the codec
// guess from the file extension.
func (a *app) format() (codec.Format, error) {
	if a.cfg.Format == "" {
		return 0, nil
	}

	return codec.ParseFormat(a.cfg.Format)
}

// load reads a document, whose format follows its extension, and wraps it
// in a record of the configured type.
func (a *app) load(path string) (*record.Record, error) {
	t, err := a.recordType()
	if err != nil {
		return nil, err
	}

	tree, err := codec.ReadFile(path, 0)
	if err != nil {
		return nil, err
	}

	a.logger.Debug().Str("file", path).Int("keys", len(tree)).Msg("document loaded")

	return t.FromPlain(tree), nil
}

// outputFormat picks the encoding for stdout: the configured format, or
// the format of the input file.
func (a *app) outputFormat(input string) (codec.Format, error) {
	format, err := a.format()
	if err != nil || format != 0 {
		return format, err
	}

	return codec.FormatFromPath(input), nil
}

// plainOf returns the plain form of anything Record.Resolve may return.
func plainOf(v any) any {
	switch t := v.(type) {
	case *record.Record:
		if t == nil {
			return nil
		}

		return t.Plain()
	case *record.DictProxy:
		return t.Plain()
	case *record.ListProxy:
		return t.Plain()
	default:
		return v
	}
}

func isContainer(v any) bool {
	return plain.KindOf(v).IsContainer()
}
