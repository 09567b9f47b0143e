package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses the server flags from args (without the program name).
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN (SQLite path or postgres:// URL)
//	-r redis URL
//	-c/-config json file path with configs
//	-secret-key session and activation signing key
//	-debug enable debug endpoints
//	-log-level minimum log level
//	-base-url external origin used in activation links
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-mail-server SMTP host
//	-mail-port SMTP port
//	-mail-address sender mailbox / SMTP user
//	-mail-password SMTP password
func ParseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("vitascope", flag.ContinueOnError)

	var serverAddress NetAddress
	var databaseDSN, redisURL string
	var jsonConfigPath string
	var secretKey, logLevel, baseURL string
	var debug bool
	var requestTimeout time.Duration
	var mailServer, mailAddress, mailPassword string
	var mailPort int

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&redisURL, "r", "", "Redis URL")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&secretKey, "secret-key", "", "Session and activation signing key")
	fs.BoolVar(&debug, "debug", false, "Enable debug endpoints")
	fs.StringVar(&logLevel, "log-level", "", "Minimum log level")
	fs.StringVar(&baseURL, "base-url", "", "External origin used in activation links")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&mailServer, "mail-server", "", "SMTP host")
	fs.IntVar(&mailPort, "mail-port", 0, "SMTP port")
	fs.StringVar(&mailAddress, "mail-address", "", "Sender mailbox / SMTP user")
	fs.StringVar(&mailPassword, "mail-password", "", "SMTP password")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			SecretKey: secretKey,
			Debug:     debug,
			LogLevel:  logLevel,
			BaseURL:   baseURL,
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			DB:       DB{DSN: databaseDSN},
			RedisURL: redisURL,
		},
		Mail: Mail{
			Server:   mailServer,
			Port:     mailPort,
			Address:  mailAddress,
			Password: mailPassword,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is
// "localhost" or empty, and returns an error if the format or values are
// invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in 1..65535")
	}

	if host != "localhost" && host != "" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
