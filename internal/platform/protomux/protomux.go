package protomux

import (
	"context"
	"fmt"

	"github.com/tokenized/voting/internal/runtime"

	"github.com/pkg/errors"
)

// DiscriminatorSize is the length of the instruction tag at the front of instruction data.
const DiscriminatorSize = 8

var (
	ErrUnknownInstruction = errors.New("Unknown instruction")
	ErrMissingTag         = errors.New("Instruction data shorter than tag")
)

// A HandlerFunc handles one instruction. args is the instruction data after the tag.
type HandlerFunc func(ctx context.Context, ictx *runtime.InstructionContext, args []byte) error

type route struct {
	name    string
	handler HandlerFunc
}

// ProtoMux routes instructions to handlers by their tag.
type ProtoMux struct {
	routes map[[DiscriminatorSize]byte]route
}

func New() *ProtoMux {
	return &ProtoMux{
		routes: make(map[[DiscriminatorSize]byte]route),
	}
}

// Handle registers a handler for a tag. Registering a tag twice panics.
func (p *ProtoMux) Handle(tag [DiscriminatorSize]byte, name string, handler HandlerFunc) {
	if existing, exists := p.routes[tag]; exists {
		panic(fmt.Sprintf("Instruction tag for %s already registered by %s", name, existing.name))
	}
	p.routes[tag] = route{name: name, handler: handler}
}

// Name returns the registered name for the instruction data tag.
func (p *ProtoMux) Name(data []byte) (string, bool) {
	if len(data) < DiscriminatorSize {
		return "", false
	}
	var tag [DiscriminatorSize]byte
	copy(tag[:], data)
	r, exists := p.routes[tag]
	return r.name, exists
}

// Trigger fires the handler for the instruction.
func (p *ProtoMux) Trigger(ctx context.Context, ictx *runtime.InstructionContext) error {
	if len(ictx.Data) < DiscriminatorSize {
		return errors.Wrap(ErrMissingTag, fmt.Sprintf("%d bytes", len(ictx.Data)))
	}

	var tag [DiscriminatorSize]byte
	copy(tag[:], ictx.Data)

	r, exists := p.routes[tag]
	if !exists {
		return errors.Wrap(ErrUnknownInstruction, fmt.Sprintf("%x", tag))
	}

	return r.handler(ctx, ictx, ictx.Data[DiscriminatorSize:])
}
