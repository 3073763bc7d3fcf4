// Package input превращает дискретные события коллаборатора окна
// (клавиши, дельты указателя, клики, захват) в снимок состояния,
// снимаемый один раз за тик. Ядро симуляции не зависит от конкретного
// механизма доставки событий.
package input

// Key определяет логическую клавишу управления
type Key uint8

const (
	KeyForward Key = iota
	KeyBack
	KeyLeft
	KeyRight
	KeyUp
	KeyDown

	// Клавиши выбора размещаемого типа блока
	KeySelectGrass
	KeySelectDirt
	KeySelectStone
	KeySelectWood
)

// ClickKind определяет тип клика редактирования
type ClickKind uint8

const (
	ClickNone      ClickKind = iota
	ClickPrimary             // Разрушить блок
	ClickSecondary           // Разместить блок
)

// Snapshot — состояние ввода, накопленное между двумя тиками
type Snapshot struct {
	Captured   bool         // Активен ли захват указателя на момент снятия
	PointerDX  float64      // Суммарная дельта указателя по X за период
	PointerDY  float64      // Суммарная дельта указателя по Y за период
	Keys       map[Key]bool // Удерживаемые клавиши
	Click      ClickKind    // Не более одного клика за тик
	Selections []Key        // Нажатия клавиш выбора блока в порядке поступления
}

// Held проверяет, удерживается ли клавиша
func (s Snapshot) Held(k Key) bool {
	return s.Keys[k]
}

// Collector накапливает события ввода между тиками.
//
// Дельты указателя и клики, приходящие без захвата, отбрасываются в момент
// поступления — они не ставятся в очередь и не воспроизводятся после
// возврата захвата. Потеря захвата также сбрасывает уже накопленный ввод.
//
// Доступ однопоточный: события и снятие снимка выполняет драйвер тика.
type Collector struct {
	captured   bool
	dx, dy     float64
	keys       map[Key]bool
	click      ClickKind
	selections []Key
}

// NewCollector создаёт пустой накопитель ввода
func NewCollector() *Collector {
	return &Collector{
		keys: make(map[Key]bool),
	}
}

// SetCaptured переключает состояние захвата указателя.
// Потеря захвата синхронно отбрасывает накопленные дельты и клик.
func (c *Collector) SetCaptured(captured bool) {
	c.captured = captured
	if !captured {
		c.dx, c.dy = 0, 0
		c.click = ClickNone
		c.selections = nil
	}
}

// Captured возвращает текущее состояние захвата
func (c *Collector) Captured() bool {
	return c.captured
}

// PointerDelta накапливает дельту указателя; без захвата дельта отбрасывается
func (c *Collector) PointerDelta(dx, dy float64) {
	if !c.captured {
		return
	}
	c.dx += dx
	c.dy += dy
}

// KeyDown отмечает клавишу как удерживаемую.
// Клавиши выбора блока дополнительно записываются в порядке нажатия:
// при нескольких нажатиях за один период побеждает последняя, как
// последовательность независимых проверок в обработчике событий.
func (c *Collector) KeyDown(k Key) {
	c.keys[k] = true
	if k >= KeySelectGrass && k <= KeySelectWood {
		c.selections = append(c.selections, k)
	}
}

// KeyUp отмечает клавишу как отпущенную
func (c *Collector) KeyUp(k Key) {
	delete(c.keys, k)
}

// Click фиксирует клик редактирования; без захвата клик отбрасывается.
// За период между тиками учитывается не более одного клика.
func (c *Collector) Click(kind ClickKind) {
	if !c.captured {
		return
	}
	if c.click == ClickNone {
		c.click = kind
	}
}

// Sample снимает снимок накопленного ввода и сбрасывает разовые события.
// Состояние удерживаемых клавиш сохраняется между снимками.
func (c *Collector) Sample() Snapshot {
	keys := make(map[Key]bool, len(c.keys))
	for k, held := range c.keys {
		if held {
			keys[k] = true
		}
	}

	snap := Snapshot{
		Captured:   c.captured,
		PointerDX:  c.dx,
		PointerDY:  c.dy,
		Keys:       keys,
		Click:      c.click,
		Selections: c.selections,
	}

	c.dx, c.dy = 0, 0
	c.click = ClickNone
	c.selections = nil

	return snap
}
