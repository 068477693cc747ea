// Package eventbus 实现事件总线
package eventbus

import (
	"errors"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/dep2p/go-ethaccount/pkg/interfaces"
	"github.com/dep2p/go-ethaccount/pkg/lib/log"
)

var logger = log.Logger("core/eventbus")

var (
	// ErrClosed 事件总线或发射器已关闭
	ErrClosed = errors.New("eventbus: closed")
	// ErrInvalidEventType 无效的事件类型
	ErrInvalidEventType = errors.New("eventbus: invalid event type")
	// ErrNonPointerType 非指针类型
	ErrNonPointerType = errors.New("eventbus: event type must be a pointer")
)

// defaultBuffer 订阅默认缓冲
const defaultBuffer = 16

var _ interfaces.EventBus = (*Bus)(nil)

// Bus 事件总线
type Bus struct {
	mu     sync.Mutex
	topics map[reflect.Type]*topic
	closed bool
}

// topic 单个事件类型的订阅者与状态
type topic struct {
	typ      reflect.Type
	subs     []*Subscription
	emitters int
	stateful bool
	last     interface{}
	dropped  atomic.Int64
}

// NewBus 创建新的事件总线
func NewBus() *Bus {
	return &Bus{topics: make(map[reflect.Type]*topic)}
}

func elemType(eventType interface{}) (reflect.Type, error) {
	if eventType == nil {
		return nil, ErrInvalidEventType
	}
	typ := reflect.TypeOf(eventType)
	if typ.Kind() != reflect.Ptr {
		return nil, ErrNonPointerType
	}
	return typ.Elem(), nil
}

// topicLocked 取得或创建 topic，调用方持有 b.mu
func (b *Bus) topicLocked(typ reflect.Type) *topic {
	t, ok := b.topics[typ]
	if !ok {
		t = &topic{typ: typ}
		b.topics[typ] = t
	}
	return t
}

// dropIfIdleLocked 无订阅者且无发射器时删除 topic
func (b *Bus) dropIfIdleLocked(t *topic) {
	if len(t.subs) == 0 && t.emitters == 0 {
		delete(b.topics, t.typ)
	}
}

// Subscribe 订阅事件
func (b *Bus) Subscribe(eventType interface{}, opts ...interfaces.SubscriptionOpt) (interfaces.Subscription, error) {
	typ, err := elemType(eventType)
	if err != nil {
		return nil, err
	}

	settings := interfaces.SubscriptionSettings{Buffer: defaultBuffer}
	for _, opt := range opts {
		opt(&settings)
	}
	if settings.Buffer < 0 {
		settings.Buffer = 0
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, ErrClosed
	}

	t := b.topicLocked(typ)
	sub := &Subscription{bus: b, topic: t, out: make(chan interface{}, settings.Buffer)}
	t.subs = append(t.subs, sub)

	if t.stateful && t.last != nil {
		select {
		case sub.out <- t.last:
		default:
		}
	}
	return sub, nil
}

// Emitter 获取发射器
func (b *Bus) Emitter(eventType interface{}, opts ...interfaces.EmitterOpt) (interfaces.Emitter, error) {
	typ, err := elemType(eventType)
	if err != nil {
		return nil, err
	}

	var settings interfaces.EmitterSettings
	for _, opt := range opts {
		opt(&settings)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, ErrClosed
	}

	t := b.topicLocked(typ)
	t.emitters++
	if settings.Stateful {
		t.stateful = true
	}
	return &Emitter{bus: b, topic: t}, nil
}

// Close 关闭总线及所有订阅
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true

	for _, t := range b.topics {
		for _, sub := range t.subs {
			sub.closeChan()
		}
		t.subs = nil
	}
	b.topics = make(map[reflect.Type]*topic)
	return nil
}

// publish 非阻塞投递到所有订阅者
func (b *Bus) publish(t *topic, event interface{}) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}

	if t.stateful {
		t.last = event
	}
	for _, sub := range t.subs {
		select {
		case sub.out <- event:
		default:
			// 每丢弃 100 个事件警告一次
			if n := t.dropped.Add(1); n%100 == 1 {
				logger.Warn("慢消费者，事件被丢弃", "type", t.typ.String(), "dropped", n)
			}
		}
	}
	return nil
}

// ============================================================================
//                              Subscription
// ============================================================================

// Subscription 订阅
type Subscription struct {
	bus       *Bus
	topic     *topic
	out       chan interface{}
	closeOnce sync.Once
}

// Out 返回事件通道
func (s *Subscription) Out() <-chan interface{} {
	return s.out
}

// Close 取消订阅，可重复调用
func (s *Subscription) Close() error {
	b := s.bus
	b.mu.Lock()
	defer b.mu.Unlock()

	t := s.topic
	for i, sub := range t.subs {
		if sub == s {
			t.subs = append(t.subs[:i], t.subs[i+1:]...)
			break
		}
	}
	if !b.closed {
		b.dropIfIdleLocked(t)
	}
	s.closeChan()
	return nil
}

func (s *Subscription) closeChan() {
	s.closeOnce.Do(func() { close(s.out) })
}

// ============================================================================
//                              Emitter
// ============================================================================

// Emitter 事件发射器
type Emitter struct {
	bus    *Bus
	topic  *topic
	closed atomic.Bool
}

// Emit 发射事件
func (e *Emitter) Emit(event interface{}) error {
	if e.closed.Load() {
		return ErrClosed
	}
	return e.bus.publish(e.topic, event)
}

// Close 关闭发射器，可重复调用
func (e *Emitter) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return nil
	}
	b := e.bus
	b.mu.Lock()
	defer b.mu.Unlock()

	e.topic.emitters--
	if !b.closed {
		b.dropIfIdleLocked(e.topic)
	}
	return nil
}
