package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Config holds the application settings read from config.json.
type Config struct {
	Report struct {
		InputPath       string   `json:"input_path"`       // source CSV or XLSX file
		OutputPath      string   `json:"output_path"`      // generated HTML dashboard
		ExportPath      string   `json:"export_path"`      // optional XLSX export of the aggregate tables
		RefreshInterval Duration `json:"refresh_interval"` // interval used by the scheduled mode
	} `json:"report"`

	SheetName  string `json:"sheet_name"` // worksheet read from XLSX inputs, empty means first sheet
	LogName    string `json:"log_name"`
	LogMaxSize string `json:"log_max_size"`
}

// DataConfig holds data settings read from dataconfig.json.
type DataConfig struct {
	// CountryISO entries are merged over the built-in country table.
	// An empty code excludes the country from the map chart.
	CountryISO map[string]string `json:"country_iso"`
}

var (
	once               sync.Once
	instance           *Config
	dataConfigInstance *DataConfig
)

// LoadConfig reads both configuration files from jsonFolder once per
// process. Missing files are not an error, defaults apply instead.
func LoadConfig(jsonFolder, jsonFile, dataJsonFile string) (*Config, *DataConfig, error) {
	var err error
	once.Do(func() {
		instance, dataConfigInstance, err = loadConfigs(jsonFolder, jsonFile, dataJsonFile)
	})
	return instance, dataConfigInstance, err
}

// Default returns the configuration used when no config.json exists.
func Default() *Config {
	cfg := &Config{}
	cfg.Report.InputPath = "city_pairs.csv"
	cfg.Report.OutputPath = "dashboard_trafico_aereo.html"
	cfg.Report.RefreshInterval = Duration(30 * time.Minute)
	cfg.LogName = "app.log"
	cfg.LogMaxSize = "10 * 1024 * 1024"
	return cfg
}

func loadConfigs(jsonFolder, jsonFile, dataJsonFile string) (*Config, *DataConfig, error) {
	configFile := filepath.Join(jsonFolder, jsonFile)
	dataConfigFile := filepath.Join(jsonFolder, dataJsonFile)

	configData, err := readFile(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("reading config file: %w", err)
	}

	dataConfigData, err := readFile(dataConfigFile)
	if err != nil {
		return nil, nil, fmt.Errorf("reading data config file: %w", err)
	}

	cfgChan := make(chan *Config, 1)
	dcfgChan := make(chan *DataConfig, 1)
	errChan := make(chan error, 2)

	go parseConfig(configData, cfgChan, errChan)
	go parseDataConfig(dataConfigData, dcfgChan, errChan)

	cfg, dcfg, err := waitForResults(cfgChan, dcfgChan, errChan)
	if err != nil {
		return nil, nil, err
	}

	return cfg, dcfg, nil
}

// readFile returns nil data for files that do not exist, so that the
// parser can fall back to defaults.
func readFile(filePath string) ([]byte, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot read file %s: %w", filePath, err)
	}
	return data, nil
}

func parseConfig(data []byte, resultChan chan<- *Config, errChan chan<- error) {
	cfg := Default()
	if data == nil {
		resultChan <- cfg
		return
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		errChan <- fmt.Errorf("parsing Config: %w", err)
		return
	}
	resultChan <- cfg
}

func parseDataConfig(data []byte, resultChan chan<- *DataConfig, errChan chan<- error) {
	var dcfg DataConfig
	if data == nil {
		resultChan <- &dcfg
		return
	}
	if err := json.Unmarshal(data, &dcfg); err != nil {
		errChan <- fmt.Errorf("parsing DataConfig: %w", err)
		return
	}
	resultChan <- &dcfg
}

func waitForResults(
	cfgChan <-chan *Config,
	dcfgChan <-chan *DataConfig,
	errChan <-chan error,
) (*Config, *DataConfig, error) {
	var (
		cfg    *Config
		dcfg   *DataConfig
		errors []error
	)

	for i := 0; i < 2; i++ {
		select {
		case c := <-cfgChan:
			cfg = c
		case d := <-dcfgChan:
			dcfg = d
		case err := <-errChan:
			errors = append(errors, err)
		}
	}

	if len(errors) > 0 {
		return nil, nil, combineErrors(errors)
	}

	if cfg == nil || dcfg == nil {
		return nil, nil, fmt.Errorf("some configuration did not load")
	}

	return cfg, dcfg, nil
}

func combineErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	msg := "configuration loading hit multiple errors:"
	for _, err := range errs {
		msg = fmt.Sprintf("%s\n- %v", msg, err)
	}
	return fmt.Errorf("%s", msg)
}

// Duration wraps time.Duration so that JSON configs can spell
// intervals as strings like "30m".
type Duration time.Duration

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
