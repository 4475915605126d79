package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"AeroDashboard/src/config"
	"AeroDashboard/src/datasource/file"
	"AeroDashboard/src/processor"
	"AeroDashboard/src/report"
	"AeroDashboard/src/storage"

	"github.com/robfig/cron"
)

func main() {
	var (
		configDir  = flag.String("config", "./config", "directory holding config.json and dataconfig.json")
		inputPath  = flag.String("input", "", "source CSV or XLSX file (overrides config)")
		outputPath = flag.String("output", "", "HTML file to generate (overrides config)")
		exportPath = flag.String("xlsx", "", "XLSX export of the aggregate tables (overrides config)")
		watch      = flag.Bool("watch", false, "regenerate whenever the input file changes")
		every      = flag.Duration("every", 0, "regenerate on this interval, e.g. 30m (0 disables)")
	)
	flag.Parse()

	cfg, dcfg, err := config.LoadConfig(*configDir, "config.json", "dataconfig.json")
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	if *inputPath != "" {
		cfg.Report.InputPath = *inputPath
	}
	if *outputPath != "" {
		cfg.Report.OutputPath = *outputPath
	}
	if *exportPath != "" {
		cfg.Report.ExportPath = *exportPath
	}
	if *every != 0 {
		cfg.Report.RefreshInterval = config.Duration(*every)
	}

	logger, err := storage.NewLogger(cfg.LogName)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Close()

	// The configured overrides extend the built-in country table.
	countryISO := processor.DefaultCountryISO()
	for name, code := range dcfg.CountryISO {
		countryISO[name] = code
	}

	gen := &generator{
		cfg:        cfg,
		logger:     logger,
		aggregator: processor.NewAggregator(countryISO),
		assembler:  report.NewAssembler(nil),
	}

	switch {
	case *watch:
		runWatch(gen, logger)
	case *every != 0:
		runSchedule(gen, logger)
	default:
		if runOnce(gen) != nil {
			os.Exit(1)
		}
	}
}

// generator owns everything one pipeline pass needs.
type generator struct {
	cfg        *config.Config
	logger     *storage.Logger
	aggregator *processor.Aggregator
	assembler  *report.Assembler
}

// Generate runs the whole pipeline once: load, clean, aggregate,
// render, write.
func (g *generator) Generate() error {
	t1 := time.Now()

	// 1. Load and clean the source table.
	df, err := file.ReadTable(g.cfg.Report.InputPath, g.cfg.SheetName)
	if err != nil {
		return err
	}
	df, err = processor.CleanColumns(df)
	if err != nil {
		return err
	}
	g.logger.Info(fmt.Sprintf("loaded %d rows from %s", df.Nrow(), g.cfg.Report.InputPath))

	// 2. Aggregate.
	agg, err := g.aggregator.Aggregate(df)
	if err != nil {
		return err
	}

	// 3. Build charts and render the document.
	charts := report.BuildCharts(agg)
	html, err := g.assembler.BuildHTML(agg, charts)
	if err != nil {
		return err
	}

	// 4. Persist the artifacts.
	if err := report.WriteReport(g.cfg.Report.OutputPath, html); err != nil {
		return err
	}
	g.logger.Info(fmt.Sprintf("report written to %s (%d bytes)", g.cfg.Report.OutputPath, len(html)))

	if g.cfg.Report.ExportPath != "" {
		if err := report.ExportXLSX(agg, g.cfg.Report.ExportPath); err != nil {
			return err
		}
		g.logger.Info("aggregate tables exported to " + g.cfg.Report.ExportPath)
	}

	g.logger.Info(fmt.Sprintf("pipeline finished in %v", time.Since(t1)))
	return nil
}

// runOnce executes one pass and prints the user-facing outcome.
func runOnce(g *generator) error {
	if err := g.Generate(); err != nil {
		g.logger.Error(err.Error())
		fmt.Println(consoleMessage(err))
		return err
	}
	fmt.Printf("¡Dashboard creado exitosamente! El archivo se ha guardado como '%s'\n", g.cfg.Report.OutputPath)

	if err := g.logger.CheckRotate(g.cfg.LogMaxSize); err != nil {
		g.logger.Warning("log rotation failed: " + err.Error())
	}
	return nil
}

// consoleMessage maps the error taxonomy to the fixed messages: a
// missing input gets the path hint, everything else the generic line.
func consoleMessage(err error) string {
	var notFound *file.NotFoundError
	if errors.As(err, &notFound) {
		return fmt.Sprintf("Error: No se encontró el archivo en la ruta '%s'. Por favor, verifica la ruta.", notFound.Path)
	}
	return fmt.Sprintf("Ocurrió un error inesperado: %v", err)
}

// runWatch regenerates the dashboard every time the input file is
// rewritten.
func runWatch(g *generator, logger *storage.Logger) {
	runOnce(g)

	monitor, err := file.NewFileMonitor(g.cfg.Report.InputPath)
	if err != nil {
		logger.Error("failed to start file monitor: " + err.Error())
		os.Exit(1)
	}
	defer monitor.Close()

	logger.Info(fmt.Sprintf("watching %s for changes, Ctrl+C to quit", g.cfg.Report.InputPath))
	go waitForShutdown(logger, g.cfg.LogName)

	if err := monitor.Watch(func(path string) {
		logger.Info("input changed: " + path)
		runOnce(g)
	}); err != nil {
		logger.Error("file monitoring error: " + err.Error())
		os.Exit(1)
	}
}

// runSchedule regenerates the dashboard on the configured interval.
func runSchedule(g *generator, logger *storage.Logger) {
	runOnce(g)

	interval := time.Duration(g.cfg.Report.RefreshInterval).String()
	cronSpec := fmt.Sprintf("@every %s", interval)

	c := cron.New()
	err := c.AddFunc(cronSpec, func() {
		logger.Info(fmt.Sprintf("scheduled regeneration (interval %v)", interval))
		runOnce(g)
	})
	if err != nil {
		logger.Error("failed to schedule regeneration: " + err.Error())
		os.Exit(1)
	}

	c.Start()
	defer c.Stop()

	logger.Info(fmt.Sprintf("scheduled regeneration started (interval %v), Ctrl+C to quit", interval))
	waitForShutdown(logger, g.cfg.LogName)
}

// waitForShutdown blocks until an exit signal arrives. SIGHUP reopens
// the log file instead, so an external logrotate can move it aside.
func waitForShutdown(logger *storage.Logger, logName string) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	for sig := range sigChan {
		if sig == syscall.SIGHUP {
			if err := logger.Reopen(logName); err != nil {
				log.Printf("Failed to reopen log: %v", err)
			}
			continue
		}
		logger.Info("received signal: " + sig.String() + ", shutting down...")
		logger.Close()
		os.Exit(0)
	}
}
