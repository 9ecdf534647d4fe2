package install

import (
	"fmt"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"

	"github.com/thoreinstein/vibecheck/internal/client"
	"github.com/thoreinstein/vibecheck/internal/errors"
)

// ErrInvalidVersion is returned when a package version pin is not semver.
var ErrInvalidVersion = errors.New("invalid package version")

// LaunchCommand is the program that starts the server for stdio clients.
const LaunchCommand = "npx"

// EntrySpec describes how the managed server is launched.
type EntrySpec struct {
	// Package is the npm package that provides the server.
	Package string

	// Version optionally pins Package. It must be a semantic version.
	Version string

	// HTTPPort is the local port used to build the http endpoint.
	HTTPPort int

	// EnvPassthrough names process environment variables copied into the
	// entry when they are set.
	EnvPassthrough []string

	// EnvFile is an optional dotenv file whose values are copied into the
	// entry after EnvPassthrough; the file wins on conflict.
	EnvFile string

	// Fs reads EnvFile. Defaults to the operating system.
	Fs afero.Fs

	// LookupEnv reads the process environment. Defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// BuildEntry returns the dialect-independent entry for spec:
// "npx -y <package>[@version] start --stdio" with the collected environment,
// and http://127.0.0.1:<port>/mcp as the http endpoint.
func BuildEntry(spec EntrySpec) (client.Entry, error) {
	if strings.TrimSpace(spec.Package) == "" {
		return client.Entry{}, errors.New("package name is required")
	}

	pkg := spec.Package
	if spec.Version != "" {
		v, err := ParseVersion(spec.Version)
		if err != nil {
			return client.Entry{}, err
		}
		pkg += "@" + v
	}

	env, err := collectEnv(spec)
	if err != nil {
		return client.Entry{}, err
	}

	return client.Entry{
		Command: LaunchCommand,
		Args:    []string{"-y", pkg, "start", "--stdio"},
		Env:     env,
		URL:     LocalURL(spec.HTTPPort),
	}, nil
}

// ParseVersion validates a version pin and returns it in canonical form
// (without a leading "v").
func ParseVersion(s string) (string, error) {
	v, err := semver.NewVersion(strings.TrimSpace(s))
	if err != nil {
		return "", errors.Wrapf(ErrInvalidVersion, "%q: %v", s, err)
	}
	return v.String(), nil
}

// LocalURL is the endpoint of a server listening on the loopback interface.
func LocalURL(port int) string {
	return fmt.Sprintf("http://127.0.0.1:%d/mcp", port)
}

func collectEnv(spec EntrySpec) (map[string]string, error) {
	lookup := spec.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	env := map[string]string{}
	for _, name := range spec.EnvPassthrough {
		if v, ok := lookup(name); ok && v != "" {
			env[name] = v
		}
	}

	if spec.EnvFile == "" {
		return env, nil
	}

	fsys := spec.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	f, err := fsys.Open(spec.EnvFile)
	if err != nil {
		return nil, errors.Wrapf(err, "opening env file %s", spec.EnvFile)
	}
	defer f.Close()

	fromFile, err := godotenv.Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing env file %s", spec.EnvFile)
	}
	for k, v := range fromFile {
		env[k] = v
	}
	return env, nil
}
