package compile

import (
	"encoding/base32"
	"encoding/base64"
	"encoding/hex"

	json "github.com/goccy/go-json"
)

// contentEncodings decodes a "contentEncoding" value into raw bytes for a
// subsequent "contentMediaType" check. An unrecognized encoding name is
// simply not in this map, leaving the keyword vacuously satisfied — per
// §4.6.1's rule that unsupported content keywords degrade to a pass rather
// than a construction error.
var contentEncodings = map[string]func(string) ([]byte, error){
	"base64": base64.StdEncoding.DecodeString,
	"base32": base32.StdEncoding.DecodeString,
	"base16": hex.DecodeString,
}

// contentMediaTypes checks decoded bytes against a media type. Only
// application/json is registered; any other media type is not in this map,
// so the media-type check passes for it.
var contentMediaTypes = map[string]func([]byte) bool{
	"application/json": json.Valid,
}
