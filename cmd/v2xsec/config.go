// Copyright (c) 2025-2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/decred/dcrd/dcrutil/v4"
	"github.com/decred/slog"
	"github.com/eggandi/innowireless-dev-sub001/ec256"
	"github.com/eggandi/innowireless-dev-sub001/internal/version"
	"github.com/eggandi/innowireless-dev-sub001/sampleconfig"
	"github.com/eggandi/innowireless-dev-sub001/security"
	flags "github.com/jessevdk/go-flags"
)

const (
	defaultConfigFilename = "v2xsec.conf"
	defaultLogDirname     = "logs"
	defaultLogFilename    = "v2xsec.log"
	defaultLogLevel       = "info"
	defaultCurve          = ec256.NameNISTP256
	defaultSoakDuration   = 5 * time.Second
	defaultSoakWorkers    = 4
)

var (
	defaultHomeDir    = dcrutil.AppDataDir("v2xsec", false)
	defaultConfigFile = filepath.Join(defaultHomeDir, defaultConfigFilename)
	defaultLogDir     = filepath.Join(defaultHomeDir, defaultLogDirname)
)

// config defines the configuration options for v2xsec.
//
// See loadConfig for details on the configuration load process.
type config struct {
	// General application behavior.
	HomeDir     string `short:"A" long:"appdata" description:"Path to application home directory"`
	ConfigFile  string `short:"C" long:"configfile" description:"Path to configuration file"`
	ShowVersion bool   `short:"V" long:"version" description:"Display version information and exit"`

	// Cryptography.
	Curve          string        `long:"curve" description:"Curve of all keys and signatures {P-256, secp256k1}"`
	PoolSize       int           `long:"poolsize" description:"Number of precomputed signing parameter sets"`
	RefillInterval time.Duration `long:"refillinterval" description:"How often the signing pool replaces consumed entries"`
	KeyCacheSize   uint32        `long:"keycachesize" description:"Maximum number of reconstructed public keys to remember"`
	KeyCacheTTL    time.Duration `long:"keycachettl" description:"How long a reconstructed public key is remembered"`

	// Logging.
	LogDir        string `long:"logdir" description:"Directory to log output"`
	NoFileLogging bool   `long:"nofilelogging" description:"Disable file logging"`
	DebugLevel    string `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems -- Use show to list available subsystems"`

	// Commands.
	Reconstruct reconstructCmd `command:"reconstruct" description:"Reconstruct an implicit certificate key pair"`
	Butterfly   butterflyCmd   `command:"butterfly" description:"Reconstruct a butterfly pseudonym certificate key pair"`
	Cocoon      cocoonCmd      `command:"cocoon" description:"Derive a butterfly cocoon key"`
	Sign        signCmd        `command:"sign" description:"Sign a message"`
	Verify      verifyCmd      `command:"verify" description:"Verify a message signature"`
	Linkage     linkageCmd     `command:"linkage" description:"Derive linkage values"`
	Revoked     revokedCmd     `command:"revoked" description:"Check linkage values against a revoked batch"`
	Soak        soakCmd        `command:"soak" description:"Sign and verify concurrently through the signing pool"`

	// The following fields are derived from the options above.
	curve ec256.Curve
}

// command is implemented by every v2xsec command.
type command interface {
	run(env *cmdEnv, args []string) error
}

// commands returns the command implementations keyed by command name.
func (cfg *config) commands() map[string]command {
	return map[string]command{
		"reconstruct": &cfg.Reconstruct,
		"butterfly":   &cfg.Butterfly,
		"cocoon":      &cfg.Cocoon,
		"sign":        &cfg.Sign,
		"verify":      &cfg.Verify,
		"linkage":     &cfg.Linkage,
		"revoked":     &cfg.Revoked,
		"soak":        &cfg.Soak,
	}
}

// errSuppressUsage signifies that an error that happened during the initial
// configuration phase should suppress the usage output since it was not caused
// by the user.
type errSuppressUsage string

// Error implements the error interface.
func (e errSuppressUsage) Error() string {
	return string(e)
}

// cleanAndExpandPath expands environment variables and leading ~ in the
// passed path, cleans the result, and returns it.
func cleanAndExpandPath(path string) string {
	// Nothing to do when no path is given.
	if path == "" {
		return path
	}

	// NOTE: The os.ExpandEnv doesn't work with Windows cmd.exe-style
	// %VARIABLE%, but the variables can still be expanded via POSIX-style
	// $VARIABLE.
	path = os.ExpandEnv(path)

	if !strings.HasPrefix(path, "~") {
		return filepath.Clean(path)
	}

	// Expand initial ~ to the current user's home directory, or ~otheruser to
	// otheruser's home directory.  On Windows, both forward and backward
	// slashes can be used.
	path = path[1:]

	var pathSeparators string
	if runtime.GOOS == "windows" {
		pathSeparators = string(os.PathSeparator) + "/"
	} else {
		pathSeparators = string(os.PathSeparator)
	}

	userName := ""
	if i := strings.IndexAny(path, pathSeparators); i != -1 {
		userName = path[:i]
		path = path[i:]
	}

	homeDir := ""
	var u *user.User
	var err error
	if userName == "" {
		u, err = user.Current()
	} else {
		u, err = user.Lookup(userName)
	}
	if err == nil {
		homeDir = u.HomeDir
	}
	// Fallback to CWD if user lookup fails or user has no home directory.
	if homeDir == "" {
		homeDir = "."
	}

	return filepath.Join(homeDir, path)
}

// validLogLevel returns whether or not logLevel is a valid debug log level.
func validLogLevel(logLevel string) bool {
	_, ok := slog.LevelFromString(logLevel)
	return ok
}

// parseAndSetDebugLevels attempts to parse the specified debug level and set
// the levels accordingly.  An appropriate error is returned if anything is
// invalid.
func parseAndSetDebugLevels(debugLevel string) error {
	// When the specified string doesn't have any delimiters, treat it as
	// the log level for all subsystems.
	if !strings.Contains(debugLevel, ",") && !strings.Contains(debugLevel, "=") {
		// Validate debug log level.
		if !validLogLevel(debugLevel) {
			str := "the specified debug level [%v] is invalid"
			return fmt.Errorf(str, debugLevel)
		}

		// Change the logging level for all subsystems.
		setLogLevels(debugLevel)

		return nil
	}

	// Split the specified string into subsystem/level pairs while detecting
	// issues and update the log levels accordingly.
	for _, logLevelPair := range strings.Split(debugLevel, ",") {
		if !strings.Contains(logLevelPair, "=") {
			str := "the specified debug level contains an invalid " +
				"subsystem/level pair [%v]"
			return fmt.Errorf(str, logLevelPair)
		}

		// Extract the specified subsystem and log level.
		fields := strings.Split(logLevelPair, "=")
		subsysID, logLevel := fields[0], fields[1]

		// Validate subsystem.
		if _, exists := subsystemLoggers[subsysID]; !exists {
			str := "the specified subsystem [%v] is invalid -- " +
				"supported subsystems %v"
			return fmt.Errorf(str, subsysID, supportedSubsystems())
		}

		// Validate log level.
		if !validLogLevel(logLevel) {
			str := "the specified debug level [%v] is invalid"
			return fmt.Errorf(str, logLevel)
		}

		setLogLevel(subsysID, logLevel)
	}

	return nil
}

// createDefaultConfigFile creates a config file at the provided path populated
// with the commented sample configuration.
func createDefaultConfigFile(destPath string) error {
	// Create the destination directory if it does not exist.
	err := os.MkdirAll(filepath.Dir(destPath), 0700)
	if err != nil {
		return err
	}

	const perms = 0600
	return os.WriteFile(destPath, []byte(sampleconfig.V2xsec()), perms)
}

// fileExists reports whether the named file or directory exists.
func fileExists(name string) bool {
	if _, err := os.Stat(name); err != nil {
		if os.IsNotExist(err) {
			return false
		}
	}
	return true
}

// newConfigParser returns a new command line parser for the provided config.
func newConfigParser(cfg *config, options flags.Options) *flags.Parser {
	return flags.NewParser(cfg, options)
}

// loadConfig initializes and parses the config using a config file and command
// line options.
//
// The configuration proceeds as follows:
//  1. Start with a default config with sane settings
//  2. Pre-parse the command line to check for an alternative config file
//  3. Load configuration file overwriting defaults with any specified options
//  4. Parse CLI options and overwrite/add any specified options
//
// The above results in v2xsec functioning properly without any config settings
// while still allowing the user to override settings with config files and
// command line options.  Command line options always take precedence.
//
// It returns the loaded config, the selected command, and the positional
// arguments that follow it.
func loadConfig(appName string, args []string) (*config, command, []string, error) {
	// Default config.
	cfg := config{
		HomeDir:        defaultHomeDir,
		ConfigFile:     defaultConfigFile,
		Curve:          defaultCurve,
		PoolSize:       security.DefaultPoolCapacity,
		RefillInterval: security.DefaultRefillInterval,
		KeyCacheSize:   security.DefaultKeyCacheSize,
		KeyCacheTTL:    security.DefaultKeyCacheTTL,
		LogDir:         defaultLogDir,
		DebugLevel:     defaultLogLevel,
		Sign:           signCmd{Form: "uncompressed"},
		Linkage:        linkageCmd{Count: 1},
		Soak: soakCmd{
			Duration: defaultSoakDuration,
			Workers:  defaultSoakWorkers,
			Form:     "uncompressed",
		},
	}

	// Pre-parse the command line options to see if an alternative config
	// file, home dir, or the version flag was specified.  Any errors aside
	// from the help message error can be ignored here since they will be
	// caught by the final parse below.
	preCfg := cfg
	preParser := newConfigParser(&preCfg, flags.HelpFlag|flags.PassDoubleDash)
	_, err := preParser.ParseArgs(args)
	if err != nil {
		var e *flags.Error
		if errors.As(err, &e) && e.Type == flags.ErrHelp {
			fmt.Fprintln(os.Stdout, err)
			return nil, nil, nil, err
		}
	}

	// Show the version and exit if the version flag was specified.
	if preCfg.ShowVersion {
		fmt.Printf("%s version %s (Go version %s %s/%s)\n", appName,
			version.String(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
		os.Exit(0)
	}

	// Update the home directory for v2xsec if specified.  Since the home
	// directory is updated, other variables need to be updated to reflect
	// the new changes.
	if preCfg.HomeDir != "" {
		cfg.HomeDir, _ = filepath.Abs(cleanAndExpandPath(preCfg.HomeDir))

		if preCfg.ConfigFile == defaultConfigFile {
			defaultConfigFile = filepath.Join(cfg.HomeDir,
				defaultConfigFilename)
			preCfg.ConfigFile = defaultConfigFile
			cfg.ConfigFile = defaultConfigFile
		} else {
			cfg.ConfigFile = preCfg.ConfigFile
		}
		if preCfg.LogDir == defaultLogDir {
			cfg.LogDir = filepath.Join(cfg.HomeDir, defaultLogDirname)
		} else {
			cfg.LogDir = preCfg.LogDir
		}
	}

	// Create a default config file when one does not exist and the user did
	// not specify an override.
	if preCfg.ConfigFile == defaultConfigFile && !fileExists(preCfg.ConfigFile) {
		err := createDefaultConfigFile(preCfg.ConfigFile)
		if err != nil {
			str := "failed to create default config file: %v"
			return nil, nil, nil, errSuppressUsage(fmt.Sprintf(str, err))
		}
	}

	// Load additional config from file.
	parser := newConfigParser(&cfg, flags.Default)
	err = flags.NewIniParser(parser).ParseFile(preCfg.ConfigFile)
	if err != nil {
		var e *os.PathError
		if !errors.As(err, &e) {
			err = fmt.Errorf("error parsing config file: %w", err)
			return nil, nil, nil, err
		}
		str := "%s: failed to read config file %s: %w"
		err = errSuppressUsage(fmt.Errorf(str, appName, preCfg.ConfigFile,
			err).Error())
		return nil, nil, nil, err
	}

	// Parse command line options again to ensure they take precedence.
	remainingArgs, err := parser.ParseArgs(args)
	if err != nil {
		return nil, nil, nil, err
	}
	if parser.Active == nil {
		return nil, nil, nil, fmt.Errorf("%s: no command specified", appName)
	}
	cmd := cfg.commands()[parser.Active.Name]

	// Special show command to list supported subsystems and exit.
	if cfg.DebugLevel == "show" {
		fmt.Println("Supported subsystems", supportedSubsystems())
		os.Exit(0)
	}

	// Initialize log rotation.  After the log rotation has been initialized,
	// the logger variables may be used.
	cfg.LogDir = cleanAndExpandPath(cfg.LogDir)
	if !cfg.NoFileLogging {
		logPath := filepath.Join(cfg.LogDir, defaultLogFilename)
		if err := initLogRotator(logPath); err != nil {
			return nil, nil, nil, errSuppressUsage(err.Error())
		}
	}

	// Parse, validate, and set debug log level(s).
	if err := parseAndSetDebugLevels(cfg.DebugLevel); err != nil {
		return nil, nil, nil, fmt.Errorf("%s: %w", appName, err)
	}

	// Resolve the curve.
	cfg.curve, err = ec256.ByName(cfg.Curve)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%s: %w", appName, err)
	}

	// Validate the signing pool and key cache settings.
	if cfg.PoolSize < 1 {
		str := "%s: the poolsize option must be positive -- parsed [%d]"
		return nil, nil, nil, fmt.Errorf(str, appName, cfg.PoolSize)
	}
	if cfg.RefillInterval <= 0 {
		str := "%s: the refillinterval option must be positive -- parsed [%v]"
		return nil, nil, nil, fmt.Errorf(str, appName, cfg.RefillInterval)
	}
	if cfg.KeyCacheSize == 0 || cfg.KeyCacheTTL <= 0 {
		str := "%s: the key cache size and ttl must be positive"
		return nil, nil, nil, fmt.Errorf(str, appName)
	}

	return &cfg, cmd, remainingArgs, nil
}
