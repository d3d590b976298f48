// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/gviegas/greenspace"
	"github.com/gviegas/greenspace/linear"
	"github.com/gviegas/greenspace/node"
)

// Adapter implements greenspace.Service on top of a
// Graph and a Camera.
// It is safe for concurrent use. Subscribed functions
// are called on the goroutine that made the change,
// after the Adapter is unlocked, and before the method
// that made the change returns. Changes are delivered
// to subscribers in the order they were made, so a
// subscribed function may query the Adapter but must
// not change it.
type Adapter struct {
	mu    sync.Mutex
	graph Graph
	cam   *Camera
	mat   *Material
	objs  map[string]object
	order []string
	subs  []subscriber
	subID uint64
	seq   uint64
	newID func() string

	// Delivery turns. A change numbered seq is
	// delivered once turn reaches seq.
	turnMu sync.Mutex
	turnCv *sync.Cond
	turn   uint64
}

type object struct {
	node node.Node
	draw *Drawable
}

type subscriber struct {
	id uint64
	f  func(greenspace.State)
}

var _ greenspace.Service = (*Adapter)(nil)

// NewAdapter creates a new Adapter with an empty scene.
// If config is nil, DefaultConfig is used.
func NewAdapter(config *Config) *Adapter {
	var cfg Config
	if config == nil {
		cfg = DefaultConfig()
	} else {
		cfg = *config
		cfg.fill()
	}
	a := &Adapter{
		cam:   NewCamera(&cfg),
		mat:   NewMaterial(cfg.MeshColor),
		objs:  make(map[string]object),
		newID: uuid.NewString,
	}
	a.turnCv = sync.NewCond(&a.turnMu)
	return a
}

// update calls f with a locked.
// If f returns true, every subscriber is called with
// the resulting State once a is unlocked and every
// earlier change has been delivered.
func (a *Adapter) update(f func() bool) {
	a.mu.Lock()
	if !f() {
		a.mu.Unlock()
		return
	}
	st := a.state()
	subs := slices.Clone(a.subs)
	seq := a.seq
	a.seq++
	a.mu.Unlock()
	a.deliver(seq, st, subs)
}

// deliver waits for the turn of seq and then calls
// subs with st.
func (a *Adapter) deliver(seq uint64, st greenspace.State, subs []subscriber) {
	a.turnMu.Lock()
	for a.turn != seq {
		a.turnCv.Wait()
	}
	a.turnMu.Unlock()
	defer func() {
		a.turnMu.Lock()
		a.turn++
		a.turnCv.Broadcast()
		a.turnMu.Unlock()
	}()
	for _, s := range subs {
		s.f(st.Clone())
	}
}

func (a *Adapter) state() greenspace.State {
	st := greenspace.State{
		Camera: greenspace.CameraSettings{
			Position: fromV3(a.cam.Position()),
			Target:   fromV3(a.cam.Target()),
			FOV:      a.cam.FOV(),
		},
	}
	if len(a.order) > 0 {
		st.Objects = make([]greenspace.Object, 0, len(a.order))
	}
	for _, id := range a.order {
		d := a.objs[id].draw
		st.Objects = append(st.Objects, greenspace.Object{
			ID: id,
			Transform: greenspace.Transform{
				Position: fromV3(d.Position()),
				Rotation: fromV3(d.Rotation()),
				Scale:    fromV3(d.Scale()),
			},
		})
	}
	return st
}

// State implements greenspace.Service.
func (a *Adapter) State() greenspace.State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state()
}

// Object returns the object identified by id.
// It reports whether the object exists.
func (a *Adapter) Object(id string) (greenspace.Object, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	o, ok := a.objs[id]
	if !ok {
		return greenspace.Object{}, false
	}
	return greenspace.Object{
		ID: id,
		Transform: greenspace.Transform{
			Position: fromV3(o.draw.Position()),
			Rotation: fromV3(o.draw.Rotation()),
			Scale:    fromV3(o.draw.Scale()),
		},
	}, true
}

// AddObject implements greenspace.Service.
// The object is a unit box.
func (a *Adapter) AddObject(t greenspace.Transform) (obj greenspace.Object) {
	a.update(func() bool {
		id := a.newID()
		for _, dup := a.objs[id]; dup; _, dup = a.objs[id] {
			id = a.newID()
		}
		d := newDrawable(unitBox, a.mat, toV3(t.Position), toV3(t.Rotation), toV3(t.Scale))
		a.objs[id] = object{a.graph.insert(d), d}
		a.order = append(a.order, id)
		obj = greenspace.Object{ID: id, Transform: t}
		return true
	})
	return
}

// RemoveObject implements greenspace.Service.
func (a *Adapter) RemoveObject(id string) {
	a.update(func() bool {
		o, ok := a.objs[id]
		if !ok {
			return false
		}
		a.graph.remove(o.node)
		delete(a.objs, id)
		a.order = slices.DeleteFunc(a.order, func(s string) bool { return s == id })
		return true
	})
}

// updateObject calls f with the Drawable of id, if any.
func (a *Adapter) updateObject(id string, f func(*Drawable)) {
	a.update(func() bool {
		o, ok := a.objs[id]
		if ok {
			f(o.draw)
		}
		return ok
	})
}

// UpdateObjectPosition implements greenspace.Service.
func (a *Adapter) UpdateObjectPosition(id string, pos greenspace.Vector3D) {
	a.updateObject(id, func(d *Drawable) { d.SetPosition(toV3(pos)) })
}

// UpdateObjectRotation implements greenspace.Service.
func (a *Adapter) UpdateObjectRotation(id string, rot greenspace.Vector3D) {
	a.updateObject(id, func(d *Drawable) { d.SetRotation(toV3(rot)) })
}

// UpdateObjectScale implements greenspace.Service.
func (a *Adapter) UpdateObjectScale(id string, scale greenspace.Vector3D) {
	a.updateObject(id, func(d *Drawable) { d.SetScale(toV3(scale)) })
}

// SetCameraPosition implements greenspace.Service.
func (a *Adapter) SetCameraPosition(pos greenspace.Vector3D) {
	a.update(func() bool {
		a.cam.SetPosition(toV3(pos))
		return true
	})
}

// SetCameraTarget implements greenspace.Service.
func (a *Adapter) SetCameraTarget(target greenspace.Vector3D) {
	a.update(func() bool {
		a.cam.SetTarget(toV3(target))
		return true
	})
}

// SetCameraFOV implements greenspace.Service.
func (a *Adapter) SetCameraFOV(fov float64) {
	a.update(func() bool {
		a.cam.SetFOV(fov)
		return true
	})
}

// Subscribe implements greenspace.Service.
func (a *Adapter) Subscribe(f func(greenspace.State)) (unsubscribe func()) {
	a.mu.Lock()
	a.subID++
	id := a.subID
	a.subs = append(a.subs, subscriber{id, f})
	a.mu.Unlock()
	return func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		a.subs = slices.DeleteFunc(a.subs, func(s subscriber) bool { return s.id == id })
	}
}

// Scene returns the Graph and Camera of a.
// The caller must not modify them while a is in use;
// View is the synchronized alternative.
func (a *Adapter) Scene() (*Graph, *Camera) { return &a.graph, a.cam }

// View calls f with the Graph and Camera of a while
// a is locked.
// f must not call methods of a.
func (a *Adapter) View(f func(*Graph, *Camera)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	f(&a.graph, a.cam)
}

// Close removes every object, light and subscriber.
// Subscribers are not notified.
func (a *Adapter) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.graph.clear()
	clear(a.objs)
	a.order = nil
	a.subs = nil
}

func toV3(v greenspace.Vector3D) linear.V3 { return linear.V3{v.X, v.Y, v.Z} }

func fromV3(v linear.V3) greenspace.Vector3D {
	return greenspace.Vector3D{X: v[0], Y: v[1], Z: v[2]}
}
