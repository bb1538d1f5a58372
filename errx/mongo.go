package errx

import (
	"errors"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

const DuplicateKeyMessage = "slug already exists"

// WrapMongo maps driver errors to AppError with appropriate status codes.
func WrapMongo(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return New(ErrNotFound, http.StatusNotFound, NotFoundMessage)
	}
	if IsDuplicateKey(err) {
		return New(err, http.StatusConflict, DuplicateKeyMessage)
	}
	return New(err, http.StatusBadGateway, DatabaseMessage)
}

func IsDuplicateKey(err error) bool {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 || e.Code == 11001 {
				return true
			}
		}
	}

	var bwe mongo.BulkWriteException
	if errors.As(err, &bwe) {
		for _, e := range bwe.WriteErrors {
			if e.Code == 11000 || e.Code == 11001 {
				return true
			}
		}
	}

	return strings.Contains(err.Error(), "E11000 duplicate key error")
}
