package mongodb

import (
	"regexp"

	"restaurant-management/internal/restaurant/domain/model"
	apperrors "restaurant-management/internal/shared/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// idFilter matches the document whose _id is the ObjectID encoded by hex.
func idFilter(hex string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return nil, apperrors.NewInvalidIDError(hex)
	}
	return bson.M{model.FieldID: oid}, nil
}

// fieldEquals matches documents whose field equals value.
func fieldEquals(field string, value interface{}) bson.M {
	return bson.M{field: value}
}

// containsFold matches documents whose field contains text, ignoring case.
// Regex metacharacters in text are matched literally.
func containsFold(field, text string) bson.M {
	return bson.M{field: bson.M{
		"$regex":   regexp.QuoteMeta(text),
		"$options": "i",
	}}
}
