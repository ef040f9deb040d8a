package optionstore

import (
	"errors"
)

var ErrEmptyValueKey = errors.New("empty value key supplied")
var ErrInvalidPayloadJSON = errors.New("payload json is not valid")
var ErrValueNotFound = errors.New("no value stored for this key")
var ErrEmptyValueTableName = errors.New("empty valueTableName supplied")
var ErrNilDatabaseConnection = errors.New("database connection must not be nil")

var ErrBuildingQueryFailed = errors.New("building query failed")
var ErrSavingValueFailed = errors.New("saving value failed")
var ErrLoadingValueFailed = errors.New("loading value failed")
var ErrRemovingValueFailed = errors.New("removing value failed")
var ErrGettingRowsAffectedFailed = errors.New("getting rows affected failed")
