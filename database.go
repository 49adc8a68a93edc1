package main

import (
	"context"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type database struct {
	db *gorm.DB
}

func newDatabase(path string) (*database, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(&Album{})
	if err != nil {
		return nil, err
	}

	return &database{
		db: db,
	}, nil
}

func (d *database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (d *database) CreateAlbum(ctx context.Context, album *Album) error {
	return d.db.WithContext(ctx).Create(album).Error
}

func (d *database) UpdateAlbum(ctx context.Context, album *Album) error {
	return d.db.WithContext(ctx).Save(album).Error
}

func (d *database) CountAlbums(ctx context.Context) (int64, error) {
	var count int64
	return count, d.db.WithContext(ctx).Model(&Album{}).Count(&count).Error
}

func (d *database) GetAlbums(ctx context.Context) ([]*Album, error) {
	var albums []*Album
	return albums, d.db.WithContext(ctx).Order("id").Find(&albums).Error
}

func (d *database) GetAlbum(ctx context.Context, id int64) (*Album, error) {
	var album Album
	err := d.db.WithContext(ctx).First(&album, id).Error
	if err != nil {
		return nil, err
	}
	return &album, nil
}

func (d *database) DeleteAlbum(ctx context.Context, id int64) (bool, error) {
	res := d.db.WithContext(ctx).Delete(&Album{}, id)
	return res.RowsAffected > 0, res.Error
}
