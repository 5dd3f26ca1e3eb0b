package controller

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// TaskContent implements tview.TableContent over the controller's task
// list, which tview.Table uses to update data.
type TaskContent struct {
	tview.TableContentReadOnly
	c *Controller
}

// GetCell returns the cell at the given position or nil if no cell.
func (t *TaskContent) GetCell(row, col int) *tview.TableCell {
	if row == 0 {
		switch col {
		case 0:
			return tview.NewTableCell("done").
				SetTextColor(tcell.ColorYellow).SetSelectable(false)
		case 1:
			return tview.NewTableCell("title").SetExpansion(1).
				SetTextColor(tcell.ColorYellow).SetSelectable(false)
		case 2:
			return tview.NewTableCell("description").SetExpansion(descTitleRatio).
				SetTextColor(tcell.ColorYellow).SetSelectable(false)
		}

		return nil
	}

	if row-1 >= len(t.c.taskList) {
		return nil
	}

	task := t.c.taskList[row-1]

	switch col {
	case 0:
		marker := "[ ]"
		if task.Completed == 1 {
			marker = "[x]"
		}

		// escape so tview doesn't treat the marker as a color tag
		return tview.NewTableCell(tview.Escape(marker))
	case 1:
		cell := tview.NewTableCell(task.Title).SetExpansion(1)
		if task.Completed == 1 {
			cell.SetTextColor(tcell.ColorGray)
		}

		return cell
	case 2:
		return tview.NewTableCell(task.Description).SetExpansion(descTitleRatio)
	}

	return nil
}

// GetRowCount returns the number of rows in the table.
func (t *TaskContent) GetRowCount() int {
	return len(t.c.taskList) + 1
}

// GetColumnCount returns the number of columns in the table.
func (t *TaskContent) GetColumnCount() int {
	return 3
}

// ReminderContent implements tview.TableContent over the recorded
// reminder responses.
type ReminderContent struct {
	tview.TableContentReadOnly
	c *Controller
}

// GetCell returns the cell at the given position or nil if no cell.
func (r *ReminderContent) GetCell(row, col int) *tview.TableCell {
	if row == 0 {
		switch col {
		case 0:
			return tview.NewTableCell("response").SetExpansion(1).
				SetTextColor(tcell.ColorYellow).SetSelectable(false)
		case 1:
			return tview.NewTableCell("recorded at").SetExpansion(1).
				SetTextColor(tcell.ColorYellow).SetSelectable(false)
		}

		return nil
	}

	if row-1 >= len(r.c.eventList) {
		return nil
	}

	entry := r.c.eventList[row-1]

	switch col {
	case 0:
		response := "No"
		if entry.ResponseStatus == 1 {
			response = "Yes"
		}

		return tview.NewTableCell(response).SetExpansion(1)
	case 1:
		return tview.NewTableCell(entry.NotificationTime.Format("15:04:05")).SetExpansion(1)
	}

	return nil
}

// GetRowCount returns the number of rows in the table.
func (r *ReminderContent) GetRowCount() int {
	return len(r.c.eventList) + 1
}

// GetColumnCount returns the number of columns in the table.
func (r *ReminderContent) GetColumnCount() int {
	return 2
}
