package api

import (
	"encoding/json"
	"net/http"

	"contentfield/models"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
	"github.com/rohanthewiz/serr"
)

// ValueEncodingHeader lets a client move the field value as base64 msgpack.
const ValueEncodingHeader = "X-Value-Encoding"

// FieldOutput is the stored value of an entry field. Value is nil when the
// entry has never been committed.
type FieldOutput struct {
	EntryID string             `json:"entry_id"`
	Value   *models.FieldValue `json:"value"`
}

// GetField handles GET /api/v1/entries/:entry/field
// Requires a field token for the same entry.
func GetField(ctx rweb.Context) error {
	entryID := ctx.Request().Param("entry")
	if status, msg := authorizeEntry(ctx, entryID); status != http.StatusOK {
		return writeError(ctx, status, msg)
	}

	value, err := models.GetFieldValue(entryID)
	if err != nil {
		logger.LogErr(serr.Wrap(err, "failed to get field value"), "database error")
		return writeError(ctx, http.StatusInternalServerError, "database error")
	}

	if isMsgPack(ctx) {
		encoded, err := models.EncodeMsgPackValue(value)
		if err != nil {
			logger.LogErr(err, "msgpack encoding failed")
			return writeError(ctx, http.StatusInternalServerError, "failed to encode value")
		}
		ctx.Response().SetHeader(ValueEncodingHeader, "msgpack")
		return writeSuccess(ctx, http.StatusOK, models.MsgPackValueEnvelope{EntryID: entryID, ValueEncoded: encoded})
	}

	return writeSuccess(ctx, http.StatusOK, FieldOutput{EntryID: entryID, Value: value})
}

// PutField handles PUT /api/v1/entries/:entry/field
// The body is a complete FieldValue (or a msgpack envelope); partial values
// are rejected.
func PutField(ctx rweb.Context) error {
	entryID := ctx.Request().Param("entry")
	if status, msg := authorizeEntry(ctx, entryID); status != http.StatusOK {
		return writeError(ctx, status, msg)
	}

	value, err := decodeFieldValue(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := value.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	if err := models.SaveFieldValue(entryID, *value); err != nil {
		logger.LogErr(serr.Wrap(err, "failed to save field value"), "database error")
		return writeError(ctx, http.StatusInternalServerError, "failed to save field value")
	}

	logger.Info("Field value stored by host", "entry_id", entryID, "type", string(value.Type), "id", value.ID)
	return writeSuccess(ctx, http.StatusOK, FieldOutput{EntryID: entryID, Value: value})
}

func decodeFieldValue(ctx rweb.Context) (*models.FieldValue, error) {
	body := ctx.Request().Body()

	if isMsgPack(ctx) {
		var envelope models.MsgPackValueEnvelope
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, serr.Wrap(err, "failed to decode msgpack envelope")
		}
		value, err := models.DecodeMsgPackValue(envelope.ValueEncoded)
		if err != nil {
			return nil, err
		}
		if value == nil {
			return nil, serr.New("empty msgpack value")
		}
		return value, nil
	}

	var value models.FieldValue
	if err := json.Unmarshal(body, &value); err != nil {
		return nil, serr.Wrap(err, "failed to decode field value")
	}
	return &value, nil
}

func isMsgPack(ctx rweb.Context) bool {
	return ctx.Request().Header(ValueEncodingHeader) == "msgpack"
}

// authorizeEntry relies on JWTAuthMiddleware having populated the context.
// No valid token is 401; a token for another entry is 403.
func authorizeEntry(ctx rweb.Context, entryID string) (int, string) {
	if authenticated, _ := ctx.Get("authenticated").(bool); !authenticated {
		return http.StatusUnauthorized, "authentication required"
	}
	tokenEntry, _ := ctx.Get("entry_id").(string)
	if entryID == "" || tokenEntry != entryID {
		return http.StatusForbidden, "token does not grant access to this entry"
	}
	return http.StatusOK, ""
}
