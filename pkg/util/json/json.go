// Package json routes encoding through json-iterator configured to behave like
// encoding/json.
package json

import (
	"encoding/json"

	jsoniter "github.com/json-iterator/go"
)

var Marshal = jsoniter.ConfigCompatibleWithStandardLibrary.Marshal
var MarshalIndent = jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent
var Unmarshal = jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal

var NewEncoder = jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder
var NewDecoder = jsoniter.ConfigCompatibleWithStandardLibrary.NewDecoder

type Marshaler json.Marshaler
type Unmarshaler json.Unmarshaler

type RawMessage json.RawMessage
