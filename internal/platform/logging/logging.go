package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/ogurasousui/service-award/internal/platform/config"
	"github.com/sirupsen/logrus"
)

// New は logging 設定から logrus.Logger を生成します。out が nil の場合は標準エラー出力に書き込みます。
func New(cfg config.LoggingConfig, out io.Writer) (*logrus.Logger, error) {
	if out == nil {
		out = os.Stderr
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(level)

	switch cfg.Format {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return logger, nil
}
