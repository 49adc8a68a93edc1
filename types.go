package main

import "strconv"

type Album struct {
	ID     int64  `json:"id" gorm:"primaryKey" yaml:"id"`
	UserID int64  `json:"userId,omitempty" yaml:"userId"`
	Title  string `json:"title" yaml:"title"`
}

func (a *Album) String() string {
	return "#" + strconv.FormatInt(a.ID, 10) + ` "` + a.Title + `"`
}

// editSession is the single inline edit in progress.
type editSession struct {
	AlbumID int64
	Draft   string
}
