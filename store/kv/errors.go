package kv

import "errors"

var ErrNotFound = errors.New("kv: key does not exist")
