package config

import (
	"errors"
	"flag"
	"net"
	"runtime"
	"strconv"
	"strings"
)

// Defaults of the command-line options.
const (
	DefaultHTTPHost = "0.0.0.0"
	DefaultHTTPPort = 8000
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// Flags are the command-line options of the api and worker binaries. They
// only describe how the process is hosted; application settings come from
// [Load].
type Flags struct {
	// HTTPAddress is the listen address of the HTTP application.
	HTTPAddress NetAddress
	// Concurrency is the number of task-queue worker slots.
	Concurrency int
}

// ParseFlags parses args with a dedicated flag set called name.
//
// Flags:
//
//	-a           HTTP listen address in format [host]:[port] (default 0.0.0.0:8000)
//	-concurrency number of task-queue worker slots (default: number of CPUs)
func ParseFlags(name string, args []string) (*Flags, error) {
	flags := &Flags{
		HTTPAddress: NetAddress{Host: DefaultHTTPHost, Port: DefaultHTTPPort},
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Var(&flags.HTTPAddress, "a", "Net address host:port")
	fs.IntVar(&flags.Concurrency, "concurrency", runtime.NumCPU(), "Task-queue worker slots")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if flags.Concurrency < 1 {
		return nil, errors.New("concurrency must be a positive integer")
	}

	return flags, nil
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
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
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
		return errors.New("port number must be between 1 and 65535")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
