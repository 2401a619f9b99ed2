package simulation

import (
	"fmt"
	"math/big"
	"reflect"
	"strconv"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"

	abiUtils "github.com/smartcontractkit/governor/internal/utils/abi"
	"github.com/smartcontractkit/governor/types"
)

// EncodeCall encodes a call to signature from string arguments. Address arguments go through
// resolve so they may name accounts.
func EncodeCall(signature string, args []string, resolve func(string) (common.Address, error)) ([]byte, error) {
	_, inputs, err := abiUtils.ParseSignature(signature)
	if err != nil {
		return nil, err
	}
	if len(args) != len(inputs) {
		return nil, fmt.Errorf("%s takes %d arguments, got %d", signature, len(inputs), len(args))
	}

	values := make([]any, len(args))
	for i, arg := range args {
		v, err := convertArg(inputs[i].Type, arg, resolve)
		if err != nil {
			return nil, fmt.Errorf("%s argument %d: %w", signature, i, err)
		}
		values[i] = v
	}

	return abiUtils.EncodeCall(signature, values...)
}

func convertArg(typ abi.Type, arg string, resolve func(string) (common.Address, error)) (any, error) {
	switch typ.T {
	case abi.AddressTy:
		return resolve(arg)
	case abi.UintTy, abi.IntTy:
		n, ok := new(big.Int).SetString(arg, 0)
		if !ok {
			return nil, fmt.Errorf("invalid integer %q", arg)
		}
		if typ.Size > 64 {
			return n, nil
		}

		// Integers of 64 bits or less pack from their exact Go type.
		rt := typ.GetType()
		v := reflect.New(rt).Elem()
		if typ.T == abi.UintTy {
			if n.Sign() < 0 || !n.IsUint64() || v.OverflowUint(n.Uint64()) {
				return nil, fmt.Errorf("%s out of range for %s", arg, typ)
			}
			v.SetUint(n.Uint64())
		} else {
			if !n.IsInt64() || v.OverflowInt(n.Int64()) {
				return nil, fmt.Errorf("%s out of range for %s", arg, typ)
			}
			v.SetInt(n.Int64())
		}

		return v.Interface(), nil
	case abi.BoolTy:
		return strconv.ParseBool(arg)
	case abi.StringTy:
		return arg, nil
	case abi.BytesTy:
		return hexutil.Decode(arg)
	case abi.FixedBytesTy:
		b, err := hexutil.Decode(arg)
		if err != nil {
			return nil, err
		}
		if len(b) != typ.Size {
			return nil, fmt.Errorf("%s needs %d bytes, got %d", typ, typ.Size, len(b))
		}
		v := reflect.New(typ.GetType()).Elem()
		reflect.Copy(v, reflect.ValueOf(b))

		return v.Interface(), nil
	default:
		return nil, fmt.Errorf("unsupported argument type %s", typ)
	}
}

// BuildActions builds proposal actions, resolving targets and address arguments by name.
func BuildActions(steps []ActionStep, resolve func(string) (common.Address, error)) ([]types.Action, error) {
	actions := make([]types.Action, 0, len(steps))
	for i, step := range steps {
		target, err := resolve(step.Target)
		if err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}

		value := new(uint256.Int)
		if step.Value != "" {
			if value, err = uint256.FromDecimal(step.Value); err != nil {
				return nil, fmt.Errorf("action %d value: %w", i, err)
			}
		}

		calldata, err := EncodeCall(step.Signature, step.Args, resolve)
		if err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}

		actions = append(actions, types.NewAction(target, value, calldata, step.Signature))
	}

	return actions, nil
}
