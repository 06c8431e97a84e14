// Copyright 2021 Airbus Defence and Space
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"cloud.google.com/go/storage"
	"github.com/airbusgeo/cogger"
	"github.com/airbusgeo/gdalkit"
	"github.com/airbusgeo/gdalkit/gcs"
	"github.com/airbusgeo/gdalkit/internal/tileapi"
	"github.com/airbusgeo/gdalkit/tiles"
	"github.com/airbusgeo/osio"
	"github.com/spf13/cobra"
)

func gsparse(file string) (bucket, object string) {
	if !strings.HasPrefix(file, "gs://") {
		return
	}
	file = file[5:]
	firstSlash := strings.Index(file, "/")
	if firstSlash == -1 {
		return
	}
	obj := strings.Trim(file[firstSlash:], "/")
	if obj == "" {
		return
	}
	bucket = file[0:firstSlash]
	object = obj
	return
}

// layerparse splits a "name=spec" layer definition
func layerparse(arg string) (name, spec string, err error) {
	eq := strings.Index(arg, "=")
	if eq <= 0 || eq == len(arg)-1 {
		return "", "", fmt.Errorf("invalid layer %q, expecting name=file.mbtiles or name=gs://bucket/prefix", arg)
	}
	return arg[0:eq], arg[eq+1:], nil
}

var (
	addr          string
	cacheEntries  int
	prefetchZoom  int
	objectExt     string
	gsBlockSize   int
	gsNumBlocks   int
	outfile       string
	coggerBufSize string
)

func init() {
	serveCommand.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	serveCommand.Flags().IntVar(&cacheEntries, "cache", 1000, "number of tiles to keep in the in-memory cache, 0 to disable")
	serveCommand.Flags().IntVar(&prefetchZoom, "prefetch-zoom", -1, "warm the cache with all tiles up to this zoom level, -1 to disable")
	serveCommand.Flags().StringVar(&objectExt, "ext", "png", "tile extension for gs:// layers")
	serveCommand.Flags().IntVarP(&gsBlockSize, "gs.blocksize", "b", 512*1024, "gs:// block size in bytes")
	serveCommand.Flags().IntVarP(&gsNumBlocks, "gs.numblocks", "n", 512, "number of gs:// blocks to cache")
	cogCommand.Flags().StringVarP(&outfile, "out", "o", "out-cog.tif", "output cog name")
	cogCommand.Flags().StringVar(&coggerBufSize, "gs.blocksize", "512k", "gs:// block size")
	rootCommand.AddCommand(serveCommand)
	rootCommand.AddCommand(cogCommand)
}

func main() {
	err := rootCommand.Execute()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

var rootCommand = &cobra.Command{
	Use:   "tileserv",
	Short: "serve and repackage map tiles",
}

var serveCommand = &cobra.Command{
	Use:   "serve [flags] -- name=file.mbtiles [name=gs://bucket/prefix]*",
	Short: "serve tile layers over http",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
		slog.SetDefault(logger)

		// route library diagnostics through slog, keeping failures as errors
		eh := gdalkit.SetErrorHandler(func(ec gdalkit.ErrorCategory, code int, msg string) error {
			if ec < gdalkit.CE_Failure {
				logger.Warn(msg, "class", ec.String(), "code", code)
				return nil
			}
			return fmt.Errorf("%s %d: %s", ec, code, msg)
		})
		defer gdalkit.RemoveErrorHandler(eh)

		var handler *gcs.Handler
		layers := map[string]tiles.Source{}
		for _, arg := range args {
			name, spec, err := layerparse(arg)
			if err != nil {
				return err
			}
			var src tiles.Source
			if bucket, prefix := gsparse(spec); bucket != "" {
				if handler == nil {
					handler, err = gcs.New(ctx,
						gcs.BlockSize(gsBlockSize),
						gcs.MaxCachedBlocks(gsNumBlocks))
					if err != nil {
						return fmt.Errorf("gcs handler: %w", err)
					}
				}
				src = tiles.NewObjectSource(handler, bucket+"/"+prefix, objectExt)
			} else {
				m, err := tiles.OpenMBTiles(spec)
				if err != nil {
					return fmt.Errorf("open %s: %w", spec, err)
				}
				defer m.Close()
				src = m
			}
			if cacheEntries > 0 {
				src, err = tiles.NewCache(src, cacheEntries)
				if err != nil {
					return fmt.Errorf("cache for %s: %w", name, err)
				}
			}
			layers[name] = src
			logger.Info("layer configured", "name", name, "source", spec)
		}

		if prefetchZoom >= 0 {
			for name, src := range layers {
				go func(name string, src tiles.Source) {
					fetched, err := tiles.Prefetch(ctx, src, 0, prefetchZoom, 4)
					if err != nil {
						logger.Error("prefetch failed", "layer", name, "err", err)
						return
					}
					logger.Info("prefetch done", "layer", name, "tiles", fetched)
				}(name, src)
			}
		}

		srv := &http.Server{
			Addr:              addr,
			Handler:           tileapi.New(layers, logger).Handler(),
			ReadTimeout:       5 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
		errCh := make(chan error, 1)
		go func() {
			logger.Info("tileserv listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errCh <- err
			}
		}()
		select {
		case <-ctx.Done():
			ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctxShutdown); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			return nil
		case err := <-errCh:
			return err
		}
	},
}

var cogCommand = &cobra.Command{
	Use:   "cog [flags] -- infile.tif",
	Short: "rewrite a tiled tiff into a cloud optimized geotiff",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		infile := args[0]
		ib, iobj := gsparse(infile)
		ob, oobj := gsparse(outfile)
		var stcl *storage.Client
		var err error
		if ib != "" || ob != "" {
			stcl, err = storage.NewClient(ctx)
			if err != nil {
				return fmt.Errorf("failed to create gcs storage client: %w", err)
			}
		}

		var in interface {
			io.ReadSeeker
			io.ReaderAt
		}
		if ib == "" {
			f, err := os.Open(infile)
			if err != nil {
				return fmt.Errorf("open %s: %w", infile, err)
			}
			defer f.Close()
			in = f
		} else {
			gs, err := osio.GCSHandle(ctx, osio.GCSClient(stcl))
			if err != nil {
				return fmt.Errorf("osio.gcshandle: %w", err)
			}
			gsa, err := osio.NewAdapter(gs, osio.BlockSize(coggerBufSize))
			if err != nil {
				return fmt.Errorf("osio.newadapter: %w", err)
			}
			r, err := gsa.Reader(ib + "/" + iobj)
			if err != nil {
				return fmt.Errorf("reader for %s: %w", infile, err)
			}
			in = r
		}

		var out io.WriteCloser
		if ob == "" {
			out, err = os.Create(outfile)
			if err != nil {
				return fmt.Errorf("create %s: %w", outfile, err)
			}
		} else {
			out = stcl.Bucket(ob).Object(oobj).NewWriter(ctx)
		}

		err = cogger.Rewrite(out, in)
		if err != nil {
			return fmt.Errorf("cogger.rewrite: %w", err)
		}
		err = out.Close()
		if err != nil {
			return fmt.Errorf("close %s: %w", outfile, err)
		}
		return nil
	},
}
