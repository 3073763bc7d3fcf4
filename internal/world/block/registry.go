package block

var registry = make(map[BlockID]BlockBehavior)

// Register добавляет поведение блока в регистр
func Register(id BlockID, behavior BlockBehavior) {
	registry[id] = behavior
}

// Get возвращает поведение для указанного ID
func Get(id BlockID) (BlockBehavior, bool) {
	behavior, exists := registry[id]
	return behavior, exists
}

// IsValidBlockID проверяет, является ли ID допустимым идентификатором блока
func IsValidBlockID(id BlockID) bool {
	_, exists := registry[id]
	return exists
}

// BlockID представляет идентификатор типа блока
type BlockID uint16

// Константы ID блоков
const (
	AirBlockID   BlockID = iota // 0 — отсутствие блока, никогда не хранится в мире
	GrassBlockID                // 1 — верхний слой колонны
	DirtBlockID                 // 2 — подповерхностный слой
	StoneBlockID                // 3 — основание колонны
	WoodBlockID                 // 4 — размещается только игроком
)

// BlockBehavior определяет свойства типа блока
type BlockBehavior interface {
	ID() BlockID
	Name() string
	// Solid возвращает true, если блок занимает ячейку и участвует
	// в пересечении с лучом редактора
	Solid() bool
}

// Name возвращает имя блока или "Unknown" для незарегистрированного ID
func Name(id BlockID) string {
	if behavior, exists := Get(id); exists {
		return behavior.Name()
	}
	return "Unknown"
}
