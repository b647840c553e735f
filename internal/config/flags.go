package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
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

// parseFlags parses command-line flags into a partial config.
//
// Flags:
//
//	-a updates API base URL
//	-push websocket push URL
//	-d database DSN
//	-c/-config json file path with configs
//	-token session bearer token
//	-self-id id of the logged-in user
//	-metrics-address prometheus endpoint in format [host]:[port]
//	-request-timeout request timeout (e.g., "15s")
//	-rps difference requests per second
//	-unresolved-policy resync or apply
//	-flush-interval state flush interval (e.g., "5s")
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("chatsync", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var metricsAddress NetAddress
	var httpAddress, pushAddress string
	var databaseDSN string
	var jsonConfigPath string
	var token string
	var selfID int64
	var requestTimeout time.Duration
	var requestsPerSecond float64
	var unresolvedPolicy string
	var flushInterval time.Duration

	fs.StringVar(&httpAddress, "a", "", "Updates API base URL")
	fs.StringVar(&pushAddress, "push", "", "Websocket push URL")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&token, "token", "", "Session bearer token")
	fs.Int64Var(&selfID, "self-id", 0, "Id of the logged-in user")
	fs.Var(&metricsAddress, "metrics-address", "Prometheus endpoint host:port")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 15s)")
	fs.Float64Var(&requestsPerSecond, "rps", 0, "Difference requests per second")
	fs.StringVar(&unresolvedPolicy, "unresolved-policy", "", "resync or apply")
	fs.DurationVar(&flushInterval, "flush-interval", 0, "State flush interval (e.g., 5s)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			SelfID:         selfID,
			Token:          token,
			MetricsAddress: metricsAddress.String(),
		},
		Adapter: Adapter{
			HTTPAddress:       httpAddress,
			PushAddress:       pushAddress,
			RequestTimeout:    requestTimeout,
			RequestsPerSecond: requestsPerSecond,
		},
		Storage: Storage{
			DB: DB{DSN: databaseDSN},
		},
		Sync:         Sync{UnresolvedPolicy: unresolvedPolicy},
		Workers:      Workers{StateFlushInterval: flushInterval},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress, or an empty
// string when neither part is set.
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
