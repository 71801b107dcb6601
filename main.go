package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"contentful-blog/pkg/config"
	"contentful-blog/pkg/handlers"
	"contentful-blog/pkg/services"
	"contentful-blog/pkg/version"
	"contentful-blog/pkg/view"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

const shutdownTimeout = 10 * time.Second

func serveCmd(cfg *config.Config) *cli.Command {
	cmd := cli.Command{
		Name:  "serve",
		Usage: "serve the blog",
	}
	cmd.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:        "listen",
			Usage:       "HTTP listen address",
			Value:       cfg.ListenAddr,
			Destination: &cfg.ListenAddr,
		},
		&cli.StringFlag{
			Name:        "space",
			Usage:       "Contentful space id",
			Value:       cfg.SpaceID,
			Destination: &cfg.SpaceID,
		},
		&cli.StringFlag{
			Name:        "access-token",
			Usage:       "Contentful Content Delivery API access token",
			Value:       cfg.AccessToken,
			Destination: &cfg.AccessToken,
		},
		&cli.StringFlag{
			Name:        "environment",
			Usage:       "Contentful environment",
			Value:       cfg.Environment,
			Destination: &cfg.Environment,
		},
		&cli.StringFlag{
			Name:        "host",
			Usage:       "Contentful API host (cdn.contentful.com or preview.contentful.com)",
			Value:       cfg.Host,
			Destination: &cfg.Host,
		},
		&cli.StringFlag{
			Name:        "content-type",
			Usage:       "restrict listed entries to this content type id",
			Value:       cfg.ContentType,
			Destination: &cfg.ContentType,
		},
		&cli.StringFlag{
			Name:        "content-dir",
			Usage:       "read articles from Markdown files in this directory instead of Contentful",
			Value:       cfg.ContentDir,
			Destination: &cfg.ContentDir,
		},
		&cli.StringFlag{
			Name:        "default-entry",
			Usage:       "entry shown when no id is given",
			Value:       cfg.DefaultEntryID,
			Destination: &cfg.DefaultEntryID,
		},
		&cli.IntFlag{
			Name:        "page-size",
			Usage:       "entries per list page",
			Value:       cfg.PageSize,
			Destination: &cfg.PageSize,
		},
		&cli.StringFlag{
			Name:        "template",
			Usage:       "host page template; the embedded page is used when empty",
			Value:       cfg.TemplatePath,
			Destination: &cfg.TemplatePath,
		},
		&cli.StringFlag{
			Name:        "static-dir",
			Usage:       "directory served under /static",
			Value:       cfg.StaticDir,
			Destination: &cfg.StaticDir,
		},
	}

	cmd.Action = func(c *cli.Context) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		return serve(c.Context, *cfg)
	}
	return &cmd
}

func newGateway(cfg config.Config) services.Gateway {
	if !cfg.UseContentful() {
		log.Info().Str("dir", cfg.ContentDir).Msg("reading articles from content directory")
		return services.NewFileGateway(cfg.ContentDir, cfg.ContentType)
	}
	log.Info().
		Str("space", cfg.SpaceID).
		Str("environment", cfg.Environment).
		Str("host", cfg.Host).
		Msg("reading articles from contentful")
	return services.NewContentfulGateway(services.ContentfulConfig{
		SpaceID:     cfg.SpaceID,
		AccessToken: cfg.AccessToken,
		Environment: cfg.Environment,
		Host:        cfg.Host,
	}, nil)
}

type invalidator interface {
	Invalidate()
}

// reloadOn drops the content index each time a signal arrives, until ctx is done.
func reloadOn(ctx context.Context, sigCh <-chan os.Signal, idx invalidator) {
	for {
		select {
		case <-ctx.Done():
			return
		case sig := <-sigCh:
			idx.Invalidate()
			log.Info().Str("signal", sig.String()).Msg("content index invalidated")
		}
	}
}

func serve(ctx context.Context, cfg config.Config) error {
	template := view.DefaultTemplate()
	if cfg.TemplatePath != "" {
		t, err := view.LoadTemplate(cfg.TemplatePath)
		if err != nil {
			return err
		}
		template = t
	}

	gateway := newGateway(cfg)
	if idx, ok := gateway.(invalidator); ok {
		hupCh := make(chan os.Signal, 1)
		signal.Notify(hupCh, syscall.SIGHUP)
		defer signal.Stop(hupCh)
		go reloadOn(ctx, hupCh, idx)
	}

	articles := services.NewArticles(gateway, cfg.ContentType, cfg.PageSize)
	blog := handlers.NewBlog(articles, template, view.NewArticleRenderer(services.NewMarkdown()), cfg.DefaultEntryID)

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: handlers.NewRouter(blog, handlers.NewAPI(articles), cfg.StaticDir),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.ListenAddr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func main() {
	// Initialize config
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	app := cli.NewApp()
	cli.VersionPrinter = func(c *cli.Context) {
		fmt.Fprintf(c.App.Writer, "%v\n%s", c.App.Name, version.GetBuildInfo())
	}
	app.Name = "contentful-blog"
	app.Usage = "blog front-end for a Contentful space"
	app.Version = version.GetVersion()

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level ([trace, debug, info, warn, error])",
			Value:       cfg.LogLevel,
			Destination: &cfg.LogLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format ([auto, human, json])",
			Value:       cfg.LogFormat,
			Destination: &cfg.LogFormat,
		},
	}

	app.Before = func(c *cli.Context) error {
		return config.SetUpLogger(cfg.LogLevel, cfg.LogFormat)
	}
	app.Commands = []*cli.Command{
		serveCmd(&cfg),
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	err := app.RunContext(ctx, os.Args)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("error while running blog")
		os.Exit(1)
	}
}
