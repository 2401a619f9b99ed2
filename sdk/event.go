package sdk

import "github.com/ethereum/go-ethereum/common"

// Event is a typed log entry emitted by a contract. Events are journaled with the transaction
// that emitted them and are dropped when it reverts.
type Event interface {
	EventName() string
}

// Emitter records events on behalf of the contract at source.
type Emitter interface {
	Emit(source common.Address, event Event)
}
