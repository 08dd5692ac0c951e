// Package cli wires the animefilter commands.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gorm.io/gorm"

	"github.com/theplant/animefilter"
	"github.com/theplant/animefilter/cursor"
	"github.com/theplant/animefilter/gormlibrary"
	"github.com/theplant/animefilter/internal/config"
	"github.com/theplant/animefilter/internal/log"
)

type VersionInfo struct {
	Version string
	Commit  string
}

// app carries what every command needs once the configuration is loaded.
type app struct {
	v      *viper.Viper
	cfg    *config.Config
	logger *slog.Logger
	closer io.Closer
	db     *gorm.DB
}

func (a *app) setup(path string, stderr io.Writer) error {
	if err := config.Init(a.v, path); err != nil {
		return err
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	logger, closer, err := log.New(cfg.Log, stderr)
	if err != nil {
		return errors.Wrap(err, "setup logger")
	}
	a.cfg, a.logger, a.closer = cfg, logger, closer
	return nil
}

// close releases the database opened by openDB and the log file.
func (a *app) close() error {
	var dbErr error
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			dbErr = errors.Wrap(sqlDB.Close(), "close database")
		}
		a.db = nil
	}
	if a.closer != nil {
		if err := a.closer.Close(); err != nil {
			return errors.Wrap(err, "close log file")
		}
	}
	return dbErr
}

func (a *app) openDB() (*gorm.DB, error) {
	level, err := gormlibrary.ParseLogLevel(a.cfg.Database.LogLevel)
	if err != nil {
		return nil, err
	}
	if a.db != nil {
		return a.db, nil
	}
	a.logger.Debug("open database", "driver", a.cfg.Database.Driver)
	db, err := gormlibrary.Open(gormlibrary.Config{
		Driver:   a.cfg.Database.Driver,
		DSN:      a.cfg.Database.DSN,
		LogLevel: level,
	})
	if err != nil {
		return nil, err
	}
	a.db = db
	return db, nil
}

func (a *app) evaluator(source animefilter.Source) animefilter.Evaluator {
	return animefilter.New(source,
		animefilter.WithLogger(a.logger),
		animefilter.WithConcurrency(a.cfg.Evaluation.Concurrency),
		animefilter.WithComplexityLimits(a.cfg.Evaluation.Complexity.Limits()),
		animefilter.WithMiddleware(animefilter.LogEvaluations(a.logger)),
	)
}

// cursorCodec encrypts cursors when a key is configured and only encodes them otherwise.
func (a *app) cursorCodec() (cursor.Codec, error) {
	if a.cfg.Evaluation.CursorKey == "" {
		return cursor.NewCodec(cursor.Base64), nil
	}
	key, err := a.cfg.Evaluation.CursorKeyBytes()
	if err != nil {
		return nil, err
	}
	gcm, err := cursor.NewGCM(key)
	if err != nil {
		return nil, err
	}
	return cursor.NewCodec(cursor.GCM(gcm)), nil
}

func NewRootCommand(info VersionInfo) *cobra.Command {
	var path string
	a := &app{v: viper.New()}

	cmd := &cobra.Command{
		Use:           "animefilter",
		Short:         "Evaluate anime library filter presets",
		Long:          "Evaluate, convert and manage filter presets over an anime library stored in SQLite or Postgres.",
		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(path, cmd.ErrOrStderr())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	cmd.PersistentFlags().StringVar(&path, "config", "", "config file (default is ./config.yaml)")
	cmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("dsn", "", "database connection string")
	_ = a.v.BindPFlag("log.level", cmd.PersistentFlags().Lookup("log-level"))
	_ = a.v.BindPFlag("database.dsn", cmd.PersistentFlags().Lookup("dsn"))

	cmd.Version = fmt.Sprintf("%s.%s", info.Version, info.Commit)

	cmd.AddCommand(
		newEvaluateCommand(a),
		newConvertCommand(a),
		newCatalogCommand(a),
		newPresetsCommand(a),
	)
	return cmd
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return data, nil
}
