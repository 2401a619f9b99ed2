package timelock

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

type QueueTransaction struct {
	TxHash    common.Hash    `json:"txHash"`
	Target    common.Address `json:"target"`
	Value     *uint256.Int   `json:"value"`
	Signature string         `json:"signature"`
	Data      hexutil.Bytes  `json:"data"`
	Eta       uint64         `json:"eta"`
}

func (QueueTransaction) EventName() string { return "QueueTransaction" }

type ExecuteTransaction struct {
	TxHash    common.Hash    `json:"txHash"`
	Target    common.Address `json:"target"`
	Value     *uint256.Int   `json:"value"`
	Signature string         `json:"signature"`
	Data      hexutil.Bytes  `json:"data"`
	Eta       uint64         `json:"eta"`
}

func (ExecuteTransaction) EventName() string { return "ExecuteTransaction" }

type CancelTransaction struct {
	TxHash    common.Hash    `json:"txHash"`
	Target    common.Address `json:"target"`
	Value     *uint256.Int   `json:"value"`
	Signature string         `json:"signature"`
	Data      hexutil.Bytes  `json:"data"`
	Eta       uint64         `json:"eta"`
}

func (CancelTransaction) EventName() string { return "CancelTransaction" }

type NewDelay struct {
	Delay uint64 `json:"delay"`
}

func (NewDelay) EventName() string { return "NewDelay" }

type NewPendingAdmin struct {
	PendingAdmin common.Address `json:"pendingAdmin"`
}

func (NewPendingAdmin) EventName() string { return "NewPendingAdmin" }

type NewAdmin struct {
	Admin common.Address `json:"admin"`
}

func (NewAdmin) EventName() string { return "NewAdmin" }
