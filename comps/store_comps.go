package comps

//*******************************************
// component io
//*******************************************

type IStoreable interface {
	_Store(path string) error
}

func Store(comp IStoreable, path string) error {
	return comp._Store(path)
}

type ILoadable[T any] interface {
	_New() T
	_Load(path string) error
}

func Load[T ILoadable[T]](path string) (T, error) {
	var comp T
	comp = comp._New()
	err := comp._Load(path)
	return comp, err
}

type IRemoveable interface {
	_Remove(path string)
}

func Remove[T IRemoveable](path string) {
	var comp T
	comp._Remove(path)
}
