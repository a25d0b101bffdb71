package shutdown

import (
	"container/heap"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/flanksource/commons/logger"
)

// Hook priorities: the child fimfic2epub process is stopped before the
// cover server it may still be downloading from.
const (
	PriorityProcess = 0
	PriorityDefault = 100
	PriorityServer  = 200
)

type Hook struct {
	label    string
	priority int
	fn       func()
	index    int // for heap interface
}

type hookHeap []*Hook

func (h hookHeap) Len() int           { return len(h) }
func (h hookHeap) Less(i, j int) bool { return h[i].priority < h[j].priority }
func (h hookHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *hookHeap) Push(x interface{}) {
	item := x.(*Hook)
	item.index = len(*h)
	*h = append(*h, item)
}

func (h *hookHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*h = old[0 : n-1]
	return item
}

var (
	hooks    hookHeap
	hooksMux sync.Mutex
	once     sync.Once
)

// AddHook registers a shutdown hook with default priority.
func AddHook(label string, fn func()) {
	AddHookWithPriority(label, PriorityDefault, fn)
}

// AddHookWithPriority registers a shutdown hook with a specific priority.
func AddHookWithPriority(label string, priority int, fn func()) {
	hooksMux.Lock()
	defer hooksMux.Unlock()

	heap.Push(&hooks, &Hook{
		label:    label,
		priority: priority,
		fn:       fn,
	})
}

// Shutdown executes all registered hooks in priority order, lowest first.
func Shutdown() {
	hooksMux.Lock()
	defer hooksMux.Unlock()

	if len(hooks) == 0 {
		return
	}

	for hooks.Len() > 0 {
		hook := heap.Pop(&hooks).(*Hook)
		logger.Debugf("Executing shutdown hook: %s (priority=%d)", hook.label, hook.priority)

		func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Errorf("Panic in shutdown hook %s: %v", hook.label, r)
				}
			}()
			hook.fn()
		}()
	}
}

// WaitForSignal waits for an interrupt and triggers shutdown. A second
// signal forces an immediate exit.
func WaitForSignal() {
	once.Do(func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

		sig := <-sigChan
		fmt.Fprintf(os.Stderr, "\nReceived %s, shutting down (Ctrl+C again to force exit)\n", sig)

		go func() {
			<-sigChan
			fmt.Fprintln(os.Stderr, "\nForce exit")
			os.Exit(1)
		}()

		Shutdown()
		os.Exit(1)
	})
}
