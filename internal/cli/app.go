package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/tasknest/tasknest-backend/internal/client"
)

const configDirName = ".todoctl"

// App carries what every command needs: config, token storage and I/O
type App struct {
	In    io.Reader
	Out   io.Writer
	Store client.TokenStore

	v       *viper.Viper
	cfgFile string
}

// NewApp builds an App on the process stdio with the keyring token store
func NewApp() *App {
	return &App{
		In:    os.Stdin,
		Out:   os.Stdout,
		Store: client.NewKeyringStore(configDir()),
		v:     viper.New(),
	}
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return configDirName
	}
	return filepath.Join(home, configDirName)
}

// loadConfig reads ~/.todoctl/config.yaml (or --config) and TODOCTL_* env vars
func (a *App) loadConfig() error {
	a.v.SetDefault("api_url", client.DefaultBaseURL)
	a.v.SetDefault("page_size", 10)
	a.v.SetEnvPrefix("TODOCTL")
	a.v.AutomaticEnv()

	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		a.v.SetConfigName("config")
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath(configDir())
	}

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || a.cfgFile != "" {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	return nil
}

// anonymous returns a client without a session, for register and login
func (a *App) anonymous() *client.Client {
	return client.NewClient(a.v.GetString("api_url"), "")
}

// authed returns a client using the stored session token
func (a *App) authed() (*client.Client, error) {
	token, err := a.Store.Load()
	if errors.Is(err, client.ErrNoToken) {
		return nil, errors.New("not logged in: run 'todoctl login' first")
	}
	if err != nil {
		return nil, err
	}
	return client.NewClient(a.v.GetString("api_url"), token), nil
}

// sessionError turns a 401 into a hint to log in again
func sessionError(err error) error {
	if client.IsUnauthorized(err) {
		return fmt.Errorf("%w (run 'todoctl login' again)", err)
	}
	return err
}

// readPassword prompts without echo on a terminal and reads a plain line otherwise
func (a *App) readPassword(prompt string) (string, error) {
	fmt.Fprint(a.Out, prompt)
	if f, ok := a.In.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(a.Out)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(b), nil
	}
	line, err := bufio.NewReader(a.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
