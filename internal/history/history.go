// Package history provides a command-pattern undo/redo engine for dataset
// mutations.
package history

// Command is a reversible dataset mutation. Redo applies the mutation,
// Undo reverses it exactly.
type Command interface {
	Undo()
	Redo()
	Description() string
}

// Engine maintains the undo and redo stacks for a session. Pushing a new
// command executes it and discards any redoable future. The engine lives
// for the whole session; Clear resets it on document reset.
type Engine struct {
	undoStack []Command
	redoStack []Command
	listeners []func()
}

// NewEngine creates an empty undo/redo engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Push executes cmd and records it as the newest undoable action.
// The redo stack is cleared: a new edit invalidates the old future.
// Panics on nil, which indicates a caller bug.
func (e *Engine) Push(cmd Command) {
	if cmd == nil {
		panic("history: nil command pushed")
	}
	cmd.Redo()
	e.undoStack = append(e.undoStack, cmd)
	e.redoStack = e.redoStack[:0]
	e.notify()
}

// Undo reverses the newest undoable action. No-op when nothing to undo.
func (e *Engine) Undo() {
	if len(e.undoStack) == 0 {
		return
	}
	cmd := e.undoStack[len(e.undoStack)-1]
	e.undoStack = e.undoStack[:len(e.undoStack)-1]
	cmd.Undo()
	e.redoStack = append(e.redoStack, cmd)
	e.notify()
}

// Redo reapplies the newest undone action. No-op when nothing to redo.
func (e *Engine) Redo() {
	if len(e.redoStack) == 0 {
		return
	}
	cmd := e.redoStack[len(e.redoStack)-1]
	e.redoStack = e.redoStack[:len(e.redoStack)-1]
	cmd.Redo()
	e.undoStack = append(e.undoStack, cmd)
	e.notify()
}

// Clear empties both stacks. Used on document reset or new-image load.
func (e *Engine) Clear() {
	e.undoStack = e.undoStack[:0]
	e.redoStack = e.redoStack[:0]
	e.notify()
}

// CanUndo reports whether an undoable action exists.
func (e *Engine) CanUndo() bool {
	return len(e.undoStack) > 0
}

// CanRedo reports whether a redoable action exists.
func (e *Engine) CanRedo() bool {
	return len(e.redoStack) > 0
}

// PeekUndoDescription returns the description of the next undoable action,
// or "" when the undo stack is empty. Used for menu item labels.
func (e *Engine) PeekUndoDescription() string {
	if len(e.undoStack) == 0 {
		return ""
	}
	return e.undoStack[len(e.undoStack)-1].Description()
}

// PeekRedoDescription returns the description of the next redoable action,
// or "" when the redo stack is empty.
func (e *Engine) PeekRedoDescription() string {
	if len(e.redoStack) == 0 {
		return ""
	}
	return e.redoStack[len(e.redoStack)-1].Description()
}

// OnChange registers a callback invoked after every push, undo, redo, and
// clear. Nil callbacks are ignored.
func (e *Engine) OnChange(fn func()) {
	if fn == nil {
		return
	}
	e.listeners = append(e.listeners, fn)
}

func (e *Engine) notify() {
	for _, fn := range e.listeners {
		fn()
	}
}
