package repository

import "errors"

var (
	ErrRedisConnection   = errors.New("redis connection error")
	ErrInvalidRecordData = errors.New("invalid reminder record data")
	ErrInvalidEntryData  = errors.New("invalid reminder entry data")
	ErrInvalidHandleData = errors.New("invalid handle batch data")
)
