// Package event defines the events the plugin raises towards its host.
package event

import (
	"context"

	"github.com/fxpio/composer-asset-plugin-sub001/pkg/asset"
)

// AddVcsRepositories is raised when converted packages depend on packages
// that are only reachable through a VCS repository.
const AddVcsRepositories = "asset-plugin.add-vcs-repositories"

type Event interface {
	Name() string
}

// Dispatcher delivers events to the host.
type Dispatcher interface {
	Dispatch(ctx context.Context, e Event) error
}

// DispatcherFunc adapts a function to a Dispatcher.
type DispatcherFunc func(ctx context.Context, e Event) error

func (f DispatcherFunc) Dispatch(ctx context.Context, e Event) error {
	return f(ctx, e)
}

// Discard drops every event.
var Discard Dispatcher = DispatcherFunc(func(context.Context, Event) error { return nil })

// VcsRepositoryEvent lists the VCS repositories found while converting.
type VcsRepositoryEvent struct {
	Repositories []asset.VcsRepository
}

func (e *VcsRepositoryEvent) Name() string { return AddVcsRepositories }

// Recorder collects dispatched events in order.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Dispatch(_ context.Context, e Event) error {
	r.Events = append(r.Events, e)
	return nil
}
