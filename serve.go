package main

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	cs "github.com/webtor-io/common-services"

	wf "github.com/playproof-io/footage-web/handlers/footage"
	wj "github.com/playproof-io/footage-web/handlers/job"
	wr "github.com/playproof-io/footage-web/handlers/review"
	"github.com/playproof-io/footage-web/handlers/rpc"
	"github.com/playproof-io/footage-web/services/auth"
	"github.com/playproof-io/footage-web/services/common"
	"github.com/playproof-io/footage-web/services/download"
	"github.com/playproof-io/footage-web/services/extract"
	"github.com/playproof-io/footage-web/services/ingest"
	"github.com/playproof-io/footage-web/services/job"
	"github.com/playproof-io/footage-web/services/review"
	"github.com/playproof-io/footage-web/services/source"
	w "github.com/playproof-io/footage-web/services/web"
)

func makeServeCMD() cli.Command {
	serveCMD := cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Serves web server",
		Action:  serve,
	}
	configureServe(&serveCMD)
	return serveCMD
}

func configureServe(c *cli.Command) {
	c.Flags = cs.RegisterPGFlags(c.Flags)
	c.Flags = cs.RegisterProbeFlags(c.Flags)
	c.Flags = cs.RegisterPprofFlags(c.Flags)
	c.Flags = cs.RegisterRedisClientFlags(c.Flags)
	c.Flags = w.RegisterFlags(c.Flags)
	c.Flags = common.RegisterFlags(c.Flags)
	c.Flags = auth.RegisterFlags(c.Flags)
	c.Flags = source.RegisterFlags(c.Flags)
	c.Flags = download.RegisterFlags(c.Flags)
	c.Flags = extract.RegisterFlags(c.Flags)
	c.Flags = ingest.RegisterFlags(c.Flags)
}

func serve(c *cli.Context) error {
	// Setting HTTP Client
	cl := http.DefaultClient

	// Setting DB
	pg := cs.NewPG(c)
	defer pg.Close()

	// Setting Migrations
	err := pgMigrate(c)
	if err != nil {
		return err
	}

	var servers []cs.Servable

	// Setting Probe
	probe := cs.NewProbe(c)
	if probe != nil {
		servers = append(servers, probe)
		defer probe.Close()
	}

	// Setting Pprof
	pprof := cs.NewPprof(c)
	if pprof != nil {
		servers = append(servers, pprof)
		defer pprof.Close()
	}

	// Setting Redis
	redis := cs.NewRedisClient(c)
	defer redis.Close()

	// Setting Gin
	r := gin.Default()
	r.RedirectTrailingSlash = false
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{c.String(common.DomainFlag)},
		AllowMethods:     []string{"GET", "POST", "DELETE"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// Setting Web
	web := w.New(c, r)
	servers = append(servers, web)
	defer web.Close()

	// Setting Auth
	a := auth.New(c, pg)
	if a != nil {
		a.RegisterHandler(r)
	}

	// Setting Source Api
	srcApi := source.New(c, cl)
	if srcApi == nil {
		return errors.New("video source api is not configured")
	}

	// Setting Downloader
	d := download.New(c, cl)

	// Setting Extractor
	ex := extract.New(c)

	// Setting JobStorage
	jobs := job.NewStorage(redis.Get())

	// Setting Ingestor
	ing := ingest.New(c, ingest.NewPGStore(pg), srcApi, d, ex, jobs)

	// Setting FootageHandler
	fh := wf.New(wf.NewPGStore(pg), ing)
	fh.RegisterHandler(r)

	// Setting Review
	rs := review.New(review.NewPGStore(pg))

	// Setting ReviewHandler
	wr.RegisterHandler(r, rs)

	// Setting JobHandler
	wj.RegisterHandler(r, jobs)

	// Setting RpcHandler
	rpc.RegisterHandler(r, fh, rs)

	// Setting Serve
	srv := cs.NewServe(servers...)

	// And SERVE!
	err = srv.Serve()
	if err != nil {
		log.WithError(err).Error("got server error")
	}
	return err
}
