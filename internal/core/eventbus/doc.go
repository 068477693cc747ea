// Package eventbus 实现进程内事件总线
//
// 事件按 Go 类型路由，投递非阻塞：订阅者缓冲区满时事件被丢弃并计数。
// 有状态发射器保留最后一个事件，新订阅者立即收到。
//
//	bus := eventbus.NewBus()
//
//	sub, _ := bus.Subscribe(new(types.EvtAuthorization))
//	defer sub.Close()
//
//	em, _ := bus.Emitter(new(types.EvtAuthorization))
//	defer em.Close()
//	_ = em.Emit(types.EvtAuthorization{Accepted: true})
//
//	evt := (<-sub.Out()).(types.EvtAuthorization)
//
// host 发布授权判定与账本前进事件；Node 发布账户初始化与租约补满事件。
package eventbus
