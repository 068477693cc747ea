package interfaces

// EventBus 进程内事件总线
//
// 事件按 Go 类型路由；Subscribe 与 Emitter 都以指针类型登记，
// 例如 bus.Subscribe(new(types.EvtAuthorization))。
type EventBus interface {
	// Subscribe 订阅某类事件
	Subscribe(eventType interface{}, opts ...SubscriptionOpt) (Subscription, error)

	// Emitter 获取某类事件的发射器
	Emitter(eventType interface{}, opts ...EmitterOpt) (Emitter, error)
}

// Subscription 事件订阅
type Subscription interface {
	// Out 事件通道，Close 后关闭
	Out() <-chan interface{}

	Close() error
}

// Emitter 事件发射器
type Emitter interface {
	// Emit 非阻塞投递；订阅者缓冲区满时丢弃
	Emit(event interface{}) error

	Close() error
}

// SubscriptionOpt 订阅选项
type SubscriptionOpt func(*SubscriptionSettings)

// EmitterOpt 发射器选项
type EmitterOpt func(*EmitterSettings)

// SubscriptionSettings 订阅设置
type SubscriptionSettings struct {
	Buffer int
}

// EmitterSettings 发射器设置
type EmitterSettings struct {
	// Stateful 新订阅者立即收到最后一个事件
	Stateful bool
}

// BufSize 设置订阅缓冲区大小
func BufSize(size int) SubscriptionOpt {
	return func(s *SubscriptionSettings) {
		s.Buffer = size
	}
}

// Stateful 设置发射器为有状态模式
func Stateful() EmitterOpt {
	return func(s *EmitterSettings) {
		s.Stateful = true
	}
}
