package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"github.com/urfave/cli/v2"
)

const uiLogFile = "album-manager.log"

func startLogging(ctx *cli.Context, fallback string) (io.Closer, error) {
	path := ctx.String("log-file")
	if path == "" {
		path = fallback
	}
	return setupLogger(path, ctx.String("log-level"))
}

func apiClient(ctx *cli.Context) *client {
	return newClient(ctx.String("api-url"), ctx.Duration("timeout"))
}

func uiAction(ctx *cli.Context) error {
	closer, err := startLogging(ctx, uiLogFile)
	if err != nil {
		return err
	}
	defer closer.Close()

	return runUI(ctx.Context, apiClient(ctx))
}

func listAction(ctx *cli.Context) error {
	closer, err := startLogging(ctx, "")
	if err != nil {
		return err
	}
	defer closer.Close()

	manager := newAlbumManager(apiClient(ctx))
	err = manager.Load(ctx.Context)
	if err != nil {
		return err
	}

	for _, album := range manager.Albums() {
		printAlbum(ctx.App.Writer, album)
	}
	return nil
}

func addAction(ctx *cli.Context) error {
	closer, err := startLogging(ctx, "")
	if err != nil {
		return err
	}
	defer closer.Close()

	title := strings.Join(ctx.Args().Slice(), " ")
	if title == "" {
		return cli.Exit("a title is required", 2)
	}

	manager := newAlbumManager(apiClient(ctx))
	manager.SetNewTitle(title)
	err = manager.Add(ctx.Context)
	if err != nil {
		return err
	}

	albums := manager.Albums()
	printAlbum(ctx.App.Writer, albums[len(albums)-1])
	return nil
}

func updateAction(ctx *cli.Context) error {
	closer, err := startLogging(ctx, "")
	if err != nil {
		return err
	}
	defer closer.Close()

	if ctx.NArg() < 1 {
		return cli.Exit("usage: update <id> <title>", 2)
	}
	id, err := strconv.ParseInt(ctx.Args().First(), 10, 64)
	if err != nil {
		return cli.Exit(fmt.Sprintf("invalid album id %q", ctx.Args().First()), 2)
	}
	title := strings.Join(ctx.Args().Tail(), " ")

	manager := newAlbumManager(apiClient(ctx))
	err = manager.Load(ctx.Context)
	if err != nil {
		return err
	}
	if !manager.BeginEdit(id) {
		return fmt.Errorf("album %d not found", id)
	}
	manager.SetDraft(title)

	err = manager.SubmitEdit(ctx.Context)
	if err != nil {
		return err
	}

	for _, album := range manager.Albums() {
		if album.ID == id {
			printAlbum(ctx.App.Writer, album)
		}
	}
	return nil
}

func deleteAction(ctx *cli.Context) error {
	closer, err := startLogging(ctx, "")
	if err != nil {
		return err
	}
	defer closer.Close()

	id, err := strconv.ParseInt(ctx.Args().First(), 10, 64)
	if err != nil {
		return cli.Exit(fmt.Sprintf("invalid album id %q", ctx.Args().First()), 2)
	}

	manager := newAlbumManager(apiClient(ctx))
	err = manager.Load(ctx.Context)
	if err != nil {
		return err
	}

	confirm := promptConfirm(ctx.App.Reader, ctx.App.Writer)
	if ctx.Bool("yes") {
		confirm = nil
	}
	return manager.Delete(ctx.Context, id, confirm)
}

// promptConfirm asks on out and reads the answer from in. Only an
// explicit yes approves.
func promptConfirm(in io.Reader, out io.Writer) confirmFunc {
	reader := bufio.NewReader(in)
	return func(album Album) bool {
		fmt.Fprintf(out, "Are you sure you want to delete album %s? [y/N] ", album.String())
		answer, _ := reader.ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		return answer == "y" || answer == "yes"
	}
}

func printAlbum(w io.Writer, album Album) {
	fmt.Fprintln(w, idStyle.Render(strconv.FormatInt(album.ID, 10))+"  "+album.Title)
}

func serveAction(ctx *cli.Context) error {
	closer, err := startLogging(ctx, "")
	if err != nil {
		return err
	}
	defer closer.Close()

	db, err := newDatabase(ctx.String("database"))
	if err != nil {
		return err
	}
	defer db.Close()

	if path := ctx.String("seed"); path != "" {
		albums, err := loadSeed(path)
		if err != nil {
			return err
		}
		n, err := db.seedAlbums(ctx.Context, albums)
		if err != nil {
			return err
		}
		slog.Info("seeded database", "albums", n)
	}

	// Start HTTP handler.
	quit := make(chan os.Signal, 2)
	var wg sync.WaitGroup
	wg.Add(1)

	server := &http.Server{Addr: ":" + strconv.Itoa(ctx.Int("port")), Handler: newServer(db)}

	go func() {
		defer wg.Done()

		slog.Info("serving", "address", server.Addr)

		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("failed to start server", "error", err)
			quit <- os.Interrupt
		}
	}()

	signal.Notify(
		quit,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGHUP,
	)
	<-quit

	slog.Info("Server shutting down...")

	go server.Close()

	wg.Wait()
	return nil
}
