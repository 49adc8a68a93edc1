package main

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// seedFile is the YAML fixture accepted by `serve --seed`:
//
//	albums:
//	  - userId: 1
//	    title: quidem molestiae enim
type seedFile struct {
	Albums []Album `yaml:"albums"`
}

func loadSeed(path string) ([]Album, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var seed seedFile
	err = yaml.Unmarshal(raw, &seed)
	if err != nil {
		return nil, fmt.Errorf("parsing seed %s: %w", path, err)
	}

	for i, album := range seed.Albums {
		if album.Title == "" {
			return nil, fmt.Errorf("seed %s: album %d has no title", path, i)
		}
	}

	return seed.Albums, nil
}

// seedAlbums inserts albums into d when it holds none yet and reports
// how many were written.
func (d *database) seedAlbums(ctx context.Context, albums []Album) (int, error) {
	count, err := d.CountAlbums(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	for i := range albums {
		err = d.CreateAlbum(ctx, &albums[i])
		if err != nil {
			return i, err
		}
	}
	return len(albums), nil
}
