package entity

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"golang.org/x/net/html"
)

var _ = isComparable[InstanceId]

func isComparable[T comparable]() {}

type InstanceId string

var ErrGenerateInstanceId = errors.New("failed to generate instance id")

// GenerateInstanceId returns a random 128-bit token.
func GenerateInstanceId() (InstanceId, error) {
	return ReadInstanceId(rand.Reader)
}

// ReadInstanceId builds an instance id from 16 bytes of r.
func ReadInstanceId(r io.Reader) (InstanceId, error) {
	bytes := make([]byte, 16)
	if _, err := io.ReadFull(r, bytes); err != nil {
		return "", fmt.Errorf("%w: %w", ErrGenerateInstanceId, err)
	}
	return InstanceId(hex.EncodeToString(bytes)), nil
}

func (id InstanceId) String() string {
	return string(id)
}

type ContainerId string

// Instance is one live application of a plugin to one target node.
type Instance struct {
	id        InstanceId
	owner     PluginId
	container ContainerId
	target    *html.Node
}

func NewInstance(id InstanceId, owner PluginId, container ContainerId, target *html.Node) *Instance {
	return &Instance{
		id:        id,
		owner:     owner,
		container: container,
		target:    target,
	}
}

func (i *Instance) Id() InstanceId {
	return i.id
}

func (i *Instance) Owner() PluginId {
	return i.owner
}

func (i *Instance) Container() ContainerId {
	return i.container
}

func (i *Instance) Target() *html.Node {
	return i.target
}
