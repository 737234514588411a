package command

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/frantjc/aasa"
	"github.com/frantjc/aasa/internal/aasahttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// NewAASA returns the root command for
// aasa which acts as its CLI entrypoint.
func NewAASA() *cobra.Command {
	var (
		address    string
		bucketURL  string
		configName string
		cmd        = &cobra.Command{
			Use:   "aasa",
			Short: "Serve an apple-app-site-association",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				var (
					ctx = cmd.Context()
					log = aasa.LoggerFrom(ctx)
				)

				cfg, err := loadConfig(ctx, bucketURL, configName)
				if err != nil {
					return err
				}

				var (
					srv = &http.Server{
						ReadHeaderTimeout: time.Second * 5,
						BaseContext: func(_ net.Listener) context.Context {
							return ctx
						},
						Handler: aasahttp.NewHandler(cfg),
					}
					eg, egctx = errgroup.WithContext(ctx)
				)

				lis, err := net.Listen("tcp", address)
				if err != nil {
					return err
				}
				defer lis.Close()

				eg.Go(func() error {
					log.Info("listening on " + lis.Addr().String())
					if err := srv.Serve(lis); !errors.Is(err, http.ErrServerClosed) {
						return err
					}

					return nil
				})

				eg.Go(func() error {
					<-egctx.Done()

					shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second*30)
					defer cancel()

					log.Info("shutting down")
					return srv.Shutdown(shutdownCtx)
				})

				if err = eg.Wait(); err != nil {
					return err
				}

				return ctx.Err()
			},
		}
	)

	cmd.Flags().StringVar(&address, "addr", ":8080", "Listen address for aasa.")
	cmd.PersistentFlags().StringVar(&bucketURL, "bucket", "", "Blob bucket URL to read --config from, e.g. file:///etc/aasa or s3://my-bucket. Defaults to the local filesystem.")
	cmd.PersistentFlags().StringVar(&configName, "config", "", "Config file (.yaml, .yml, .json or .plist) describing the apple-app-site-association.")

	cmd.AddCommand(newRender(), newGet())

	return SetCommon(cmd, aasa.SemVer())
}

func newRender() *cobra.Command {
	var (
		pretty bool
		cmd    = &cobra.Command{
			Use:   "render",
			Short: "Print the apple-app-site-association that aasa would serve",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				var (
					ctx        = cmd.Context()
					bucketURL  = cmd.Flag("bucket").Value.String()
					configName = cmd.Flag("config").Value.String()
				)

				cfg, err := loadConfig(ctx, bucketURL, configName)
				if err != nil {
					return err
				}

				return encodeJSON(cmd.OutOrStdout(), cfg.Render(), pretty)
			},
		}
	)

	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent the output.")

	return cmd
}

func newGet() *cobra.Command {
	var (
		urlstr string
		pretty bool
		cmd    = &cobra.Command{
			Use:   "get",
			Short: "Fetch the apple-app-site-association from a server",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				var (
					ctx = cmd.Context()
					cli = new(aasa.Client)
				)

				if urlstr != "" {
					var err error
					if cli.Base, err = url.Parse(urlstr); err != nil {
						return err
					}
				}

				association, err := cli.GetAssociation(ctx)
				if err != nil {
					return err
				}

				return encodeJSON(cmd.OutOrStdout(), association, pretty)
			},
		}
	)

	cmd.Flags().StringVar(&urlstr, "url", "", "Base URL of the server, defaults to http://localhost:8080.")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent the output.")

	return cmd
}
