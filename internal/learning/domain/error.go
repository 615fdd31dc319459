package domain

import "errors"

var ErrProgressNotFound = errors.New("progress_not_found")
