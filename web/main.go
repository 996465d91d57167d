package main

import (
	"flag"
	"os"

	"github.com/df07/go-phong-raytracer/pkg/renderer"
	"github.com/df07/go-phong-raytracer/web/server"
	"github.com/golang/glog"
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	scenesDir := flag.String("scenes-dir", "scenes", "Directory searched for JSON scenes")
	maxConcurrent := flag.Int64("max-concurrent", 2, "Renders running at the same time")
	workers := flag.Int("workers", 0, "Worker goroutines per render (0 = all CPUs)")
	flag.Parse()
	defer glog.Flush()

	webServer := server.NewServer(server.Config{
		Port:          *port,
		ScenesDir:     *scenesDir,
		MaxConcurrent: *maxConcurrent,
		Workers:       *workers,
	})

	if err := renderer.RegisterMetrics(); err != nil {
		glog.Exitf("Error registering render metrics: %v", err)
	}
	if err := webServer.RegisterMetrics(); err != nil {
		glog.Exitf("Error registering request metrics: %v", err)
	}

	glog.Infof("Phong Raytracer Web Server")
	glog.Infof("Visit http://localhost:%d/api/scenes to list the scenes", *port)

	if err := webServer.Start(); err != nil {
		glog.Errorf("Error starting server: %v", err)
		glog.Flush()
		os.Exit(1)
	}
}
