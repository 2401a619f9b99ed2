package abi

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/crypto"
)

// SelectorLength is the size of a function selector in bytes.
const SelectorLength = 4

var (
	// ErrInvalidSignature is returned when a function signature cannot be parsed.
	ErrInvalidSignature = errors.New("invalid function signature")

	// ErrSelectorMismatch is returned when calldata does not start with the expected selector.
	ErrSelectorMismatch = errors.New("selector mismatch")
)

// Encode is the equivalent of abi.encode.
// We are using this as a global util because operation digests and proposal hashes are computed
// over abi encoded values.
// See a full set of examples https://github.com/ethereum/go-ethereum/blob/420b78659bef661a83c5c442121b13f13288c09f/accounts/abi/packing_test.go#L31
func Encode(abiStr string, values ...any) ([]byte, error) {
	// Create a dummy method with arguments
	inDef := fmt.Sprintf(`[{ "name" : "method", "type": "function", "inputs": %s}]`, abiStr)
	inAbi, err := abi.JSON(strings.NewReader(inDef))
	if err != nil {
		return nil, err
	}

	res, err := inAbi.Pack("method", values...)
	if err != nil {
		return nil, err
	}

	return res[SelectorLength:], nil
}

// Decode is the equivalent of abi.decode.
func Decode(abiStr string, data []byte) ([]any, error) {
	inDef := fmt.Sprintf(`[{ "name" : "method", "type": "function", "outputs": %s}]`, abiStr)
	inAbi, err := abi.JSON(strings.NewReader(inDef))
	if err != nil {
		return nil, err
	}

	return inAbi.Unpack("method", data)
}

// Selector returns the function selector of a signature such as "transfer(address,uint256)".
func Selector(signature string) []byte {
	return crypto.Keccak256([]byte(signature))[:SelectorLength]
}

// HasSelector reports whether calldata starts with the selector of signature.
func HasSelector(signature string, calldata []byte) bool {
	if len(calldata) < SelectorLength {
		return false
	}

	return bytes.Equal(Selector(signature), calldata[:SelectorLength])
}

// ParseSignature splits a signature into its name and argument list. Tuple arguments are not
// supported.
func ParseSignature(signature string) (string, abi.Arguments, error) {
	open := strings.IndexByte(signature, '(')
	if open <= 0 || !strings.HasSuffix(signature, ")") {
		return "", nil, fmt.Errorf("%w: %q", ErrInvalidSignature, signature)
	}

	name := signature[:open]
	inner := signature[open+1 : len(signature)-1]
	if strings.ContainsAny(inner, "() ") {
		return "", nil, fmt.Errorf("%w: %q", ErrInvalidSignature, signature)
	}

	var args abi.Arguments
	if inner == "" {
		return name, args, nil
	}

	for _, typ := range strings.Split(inner, ",") {
		t, err := abi.NewType(typ, "", nil)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %q: %w", ErrInvalidSignature, signature, err)
		}
		args = append(args, abi.Argument{Type: t})
	}

	return name, args, nil
}

// EncodeCall returns selector(signature) followed by the abi encoded values.
func EncodeCall(signature string, values ...any) ([]byte, error) {
	_, args, err := ParseSignature(signature)
	if err != nil {
		return nil, err
	}

	packed, err := args.Pack(values...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s: %w", signature, err)
	}

	return append(Selector(signature), packed...), nil
}

// DecodeCall checks that calldata is a call to signature and unpacks its arguments.
func DecodeCall(signature string, calldata []byte) ([]any, error) {
	_, args, err := ParseSignature(signature)
	if err != nil {
		return nil, err
	}

	if !HasSelector(signature, calldata) {
		return nil, fmt.Errorf("%w: calldata is not a call to %s", ErrSelectorMismatch, signature)
	}

	return args.Unpack(calldata[SelectorLength:])
}
