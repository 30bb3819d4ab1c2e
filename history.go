package voltlab

import (
	"bytes"

	"voltlab/types"
)

// DefaultHistoryDepth 默认撤销栈深度
const DefaultHistoryDepth = 200

// History 基于快照的编辑历史。
// 快照为电路的持久化JSON形式，相邻重复快照不入栈。
type History struct {
	MaxLen int
	undo   [][]byte
	redo   [][]byte
}

// NewHistory 初始化
func NewHistory() *History {
	return &History{MaxLen: DefaultHistoryDepth}
}

// Record 记录当前电路快照，清空重做栈
func (h *History) Record(cir *types.Circuit) error {
	snap, err := MarshalCircuit(cir)
	if err != nil {
		return err
	}
	if n := len(h.undo); n > 0 && bytes.Equal(h.undo[n-1], snap) {
		return nil
	}
	h.undo = append(h.undo, snap)
	if h.MaxLen > 0 && len(h.undo) > h.MaxLen {
		h.undo = h.undo[len(h.undo)-h.MaxLen:]
	}
	h.redo = h.redo[:0]
	return nil
}

// CanUndo 是否可撤销
func (h *History) CanUndo() bool { return len(h.undo) >= 2 }

// CanRedo 是否可重做
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Undo 回退到上一个快照
func (h *History) Undo(cir *types.Circuit) (bool, error) {
	if !h.CanUndo() {
		return false, nil
	}
	cur := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, cur)
	return true, h.apply(cir, h.undo[len(h.undo)-1])
}

// Redo 重放下一个快照
func (h *History) Redo(cir *types.Circuit) (bool, error) {
	if !h.CanRedo() {
		return false, nil
	}
	next := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, next)
	return true, h.apply(cir, next)
}

// apply 将快照内容写回电路
func (h *History) apply(cir *types.Circuit, snap []byte) error {
	parsed, err := UnmarshalCircuit(snap)
	if err != nil {
		return err
	}
	cir.Reset(parsed.Components())
	return nil
}
