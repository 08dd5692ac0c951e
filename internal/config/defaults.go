package config

import (
	"github.com/spf13/viper"

	"github.com/theplant/animefilter/expression"
)

func Default() Config {
	limits := expression.DefaultLimits
	return Config{
		Database: DatabaseConfig{
			Driver:   "sqlite",
			DSN:      "animefilter.db",
			LogLevel: "silent",
		},
		Evaluation: EvaluationConfig{
			Concurrency: 4,
			Complexity: ComplexityConfig{
				MaxDepth:            limits.MaxDepth,
				MaxNodes:            limits.MaxNodes,
				MaxLogicalOperators: limits.MaxLogicalOperators,
				MaxLogicalDepth:     limits.MaxLogicalDepth,
				MaxOrBranches:       limits.MaxOrBranches,
			},
		},
		Log: LogConfig{
			Level: "info",
			Rotation: RotationConfig{
				MaxSize:    128,
				MaxBackups: 5,
				MaxAge:     16,
			},
		},
	}
}

func SetDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("database.driver", defaults.Database.Driver)
	v.SetDefault("database.dsn", defaults.Database.DSN)
	v.SetDefault("database.log_level", defaults.Database.LogLevel)

	v.SetDefault("evaluation.concurrency", defaults.Evaluation.Concurrency)
	v.SetDefault("evaluation.complexity.max_depth", defaults.Evaluation.Complexity.MaxDepth)
	v.SetDefault("evaluation.complexity.max_nodes", defaults.Evaluation.Complexity.MaxNodes)
	v.SetDefault("evaluation.complexity.max_logical_operators", defaults.Evaluation.Complexity.MaxLogicalOperators)
	v.SetDefault("evaluation.complexity.max_logical_depth", defaults.Evaluation.Complexity.MaxLogicalDepth)
	v.SetDefault("evaluation.complexity.max_or_branches", defaults.Evaluation.Complexity.MaxOrBranches)
	v.SetDefault("evaluation.cursor_key", defaults.Evaluation.CursorKey)

	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.json", defaults.Log.JSON)
	v.SetDefault("log.file", defaults.Log.File)
	v.SetDefault("log.rotation.max_size", defaults.Log.Rotation.MaxSize)
	v.SetDefault("log.rotation.max_backups", defaults.Log.Rotation.MaxBackups)
	v.SetDefault("log.rotation.max_age", defaults.Log.Rotation.MaxAge)
	v.SetDefault("log.rotation.compress", defaults.Log.Rotation.Compress)
}
