package history

import (
	"graph-digitizer/internal/dataset"
	"graph-digitizer/pkg/geometry"
)

// ToggleVisibility flips a dataset's visibility flag between two recorded
// states.
type ToggleVisibility struct {
	Dataset *dataset.Dataset
	Before  bool
	After   bool
}

func (c *ToggleVisibility) Undo()               { c.Dataset.Visible = c.Before }
func (c *ToggleVisibility) Redo()               { c.Dataset.Visible = c.After }
func (c *ToggleVisibility) Description() string { return "Toggle visibility" }

// AddPoint appends a point to a dataset. Undo removes the last occurrence
// of the point, so stacked adds of equal points unwind correctly.
type AddPoint struct {
	Dataset *dataset.Dataset
	Point   geometry.Point2D
}

func (c *AddPoint) Undo()               { c.Dataset.RemoveLast(c.Point) }
func (c *AddPoint) Redo()               { c.Dataset.AddPoint(c.Point) }
func (c *AddPoint) Description() string { return "Add point" }

// RemovePoint deletes the point at a recorded index. Undo restores it at
// the same index.
type RemovePoint struct {
	Dataset *dataset.Dataset
	Point   geometry.Point2D
	Index   int
}

func (c *RemovePoint) Undo()               { c.Dataset.InsertPointAt(c.Index, c.Point) }
func (c *RemovePoint) Redo()               { c.Dataset.RemovePointAt(c.Index) }
func (c *RemovePoint) Description() string { return "Remove point" }

// MovePoint replaces the point at an index with a new position.
type MovePoint struct {
	Dataset *dataset.Dataset
	Index   int
	Before  geometry.Point2D
	After   geometry.Point2D
}

func (c *MovePoint) Undo()               { c.Dataset.SetPointAt(c.Index, c.Before) }
func (c *MovePoint) Redo()               { c.Dataset.SetPointAt(c.Index, c.After) }
func (c *MovePoint) Description() string { return "Move point" }

// Composite groups commands into a single undoable unit. Redo applies sub-
// commands in order; Undo reverses them in reverse order, which keeps
// order-dependent sub-commands reversible.
type Composite struct {
	desc string
	cmds []Command
}

// NewComposite creates an empty composite with a human-readable description.
func NewComposite(desc string) *Composite {
	return &Composite{desc: desc}
}

// Add appends a sub-command. Sub-commands are not executed here; execution
// happens when the composite is pushed or redone.
func (c *Composite) Add(cmd Command) {
	c.cmds = append(c.cmds, cmd)
}

// Len returns the number of sub-commands.
func (c *Composite) Len() int {
	return len(c.cmds)
}

func (c *Composite) Undo() {
	for i := len(c.cmds) - 1; i >= 0; i-- {
		c.cmds[i].Undo()
	}
}

func (c *Composite) Redo() {
	for _, cmd := range c.cmds {
		cmd.Redo()
	}
}

func (c *Composite) Description() string { return c.desc }
