// Copyright (c) 2015-2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
v2xsec exposes the IEEE 1609.2 security primitives from the command line.

The default options are sane for most users.  The long form of every global
option (except -C) can be specified in a configuration file that is
automatically parsed before the command line.  By default, the configuration
file is located at ~/.v2xsec/v2xsec.conf on POSIX-style operating systems and
%LOCALAPPDATA%\V2xsec\v2xsec.conf on Windows.  The -C (--configfile) flag can
be used to override this location.

Secret inputs such as private keys, expansion keys, and linkage seeds accept
the value - to read them from the terminal without echo.

Usage:

	v2xsec [OPTIONS] <command> [COMMAND OPTIONS] [ARGS]

Application Options:

	-A, --appdata=          Path to application home directory
	-C, --configfile=       Path to configuration file
	-V, --version           Display version information and exit
	    --curve=            Curve of all keys and signatures {P-256, secp256k1}
	                        (default: P-256)
	    --poolsize=         Number of precomputed signing parameter sets
	                        (default: 10)
	    --refillinterval=   How often the signing pool replaces consumed
	                        entries (default: 100ms)
	    --keycachesize=     Maximum number of reconstructed public keys to
	                        remember (default: 1024)
	    --keycachettl=      How long a reconstructed public key is remembered
	                        (default: 10m)
	    --logdir=           Directory to log output
	    --nofilelogging     Disable file logging
	-d, --debuglevel=       Logging level for all subsystems {trace, debug,
	                        info, warn, error, critical} -- You may also
	                        specify <subsystem>=<level>,<subsystem2>=<level>,...
	                        to set the log level for individual subsystems --
	                        Use show to list available subsystems (default:
	                        info)

Available commands:

	butterfly    Reconstruct a butterfly pseudonym certificate key pair
	cocoon       Derive a butterfly cocoon key
	linkage      Derive linkage values
	reconstruct  Reconstruct an implicit certificate key pair
	revoked      Check linkage values against a revoked batch
	sign         Sign a message
	soak         Sign and verify concurrently through the signing pool
	verify       Verify a message signature

Command output is written to standard output while log messages go to standard
error and the log file.
*/
package main
