package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New arma el logger de la aplicación.
// format "console" usa la salida de desarrollo, cualquier otro valor JSON.
func New(level, format string) *zap.Logger {
	var zapConfig zap.Config
	if strings.ToLower(format) == "console" {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zapConfig = zap.NewProductionConfig()
		zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	if err := zapConfig.Level.UnmarshalText([]byte(level)); err != nil {
		fmt.Fprintf(os.Stderr, "LOG_LEVEL inválido '%s', usando 'info'\n", level)
		zapConfig.Level.SetLevel(zapcore.InfoLevel)
	}

	log, err := zapConfig.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "No se pudo crear el logger: %v\n", err)
		log, _ = zap.NewProduction()
	}
	return log.With(zap.String("service", "inmobiliaria-api"))
}
