package jsonpath

import "encoding/json"

func marshalJSONString(s string) ([]byte, error) {
	return json.Marshal(s)
}

func unmarshalJSONString(data []byte) (string, error) {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", err
	}
	return s, nil
}
