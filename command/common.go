package command

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/frantjc/aasa"
	"github.com/frantjc/aasa/internal/aasablob"
	xslice "github.com/frantjc/x/slice"
	"github.com/spf13/cobra"
)

// SetCommon configures the verbosity flag, logging, version and
// error handling shared by every aasa command.
func SetCommon(cmd *cobra.Command, version string) *cobra.Command {
	var verbosity int
	cmd.PersistentFlags().CountVarP(&verbosity, "verbose", "V", fmt.Sprintf("Verbosity for %s.", cmd.Name()))
	cmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if verbose := os.Getenv("AASA_VERBOSE"); verbose != "" && xslice.Some([]string{"1", "y", "yes", "true", "t"}, func(s string, _ int) bool {
			return strings.EqualFold(s, verbose)
		}) {
			verbosity = 3
		}

		cmd.SetContext(
			aasa.WithLogger(
				cmd.Context(), aasa.NewLogger(cmd.ErrOrStderr(), verbosity),
			),
		)
	}

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	cmd.Version = version
	cmd.SetVersionTemplate("{{ .Name }} {{ .Version }} " + runtime.Version() + "\n")

	return cmd
}

// loadConfig builds the aasa.Config described by
// the file named name, see aasablob.Load.
func loadConfig(ctx context.Context, bucketURL, name string) (*aasa.Config, error) {
	log := aasa.LoggerFrom(ctx)

	if name == "" {
		log.Info("no config given, serving empty apple-app-site-association")
	} else if bucketURL == "" {
		log.Info("loading config from file " + name)
	} else {
		log.Info("loading config " + name + " from bucket " + bucketURL)
	}

	f, err := aasablob.Load(ctx, bucketURL, name)
	if err != nil {
		return nil, err
	}

	return aasa.New(f.Apply), nil
}

func encodeJSON(w io.Writer, a any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}

	return enc.Encode(a)
}
