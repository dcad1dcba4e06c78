package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/op/go-logging"

	"merchant-insights/analytics"
	"merchant-insights/loader"
	mw "merchant-insights/middleware"
	"merchant-insights/service"
)

var log = logging.MustGetLogger("log")

// InitLogger Receives the log level to be set in go-logging as a string. This method
// parses the string and set the level to the logger. If the level string is not
// valid an error is returned
func InitLogger(logLevel string) error {
	baseBackend := logging.NewLogBackend(os.Stdout, "", 0)
	format := logging.MustStringFormatter(
		`%{time:2006-01-02 15:04:05} %{level:.5s}     %{message}`,
	)
	backendFormatter := logging.NewBackendFormatter(baseBackend, format)

	backendLeveled := logging.AddModuleLevel(backendFormatter)
	logLevelCode, err := logging.LogLevel(logLevel)
	if err != nil {
		return err
	}
	backendLeveled.SetLevel(logLevelCode, "")

	logging.SetBackend(backendLeveled)
	return nil
}

func main() {
	config, err := InitConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %s", err)
	}

	if err := InitLogger(config.LogLevel); err != nil {
		log.Fatalf("%s", err)
	}

	log.Debugf("Config: %+v", config)

	dataset, err := loader.LoadDataset(config.DatasetPath)
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}

	analyzer := analytics.New(dataset)

	consumerName := config.InputName + "_" + config.WorkerId
	input, err := mw.NewConsumer(consumerName, config.InputName, config.MiddlewareAddress)
	if err != nil {
		log.Fatalf("Failed to create query consumer: %v", err)
	}
	output, err := mw.NewProducer(config.OutputName, config.MiddlewareAddress)
	if err != nil {
		log.Fatalf("Failed to create response producer: %v", err)
	}

	worker := service.NewQueryWorker(analyzer, input, output, service.WorkerOptions{
		Currency:           config.CurrencyPrefix,
		TrendWindowDays:    config.TrendWindowDays,
		StockThresholdDays: config.StockThresholdDays,
	})
	go worker.Start()

	log.Infof("Query worker %s started, consuming from %s", config.WorkerId, config.InputName)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Infof("Received signal %s, shutting down...", sig)
	worker.Close()
}
