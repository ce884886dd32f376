package surface

import (
	"fmt"
	"sync"
)

// Handle 是已挂载表面的不透明引用。零值永远不对应任何表面。
type Handle uint64

// Registry 管理已挂载的表面。挂载返回句柄，按句柄解析；
// 解析已卸载或从未挂载的句柄是不可恢复的错误。
type Registry struct {
	mu       sync.Mutex
	next     Handle
	surfaces map[Handle]Surface
}

// NewRegistry 创建空注册表。
func NewRegistry() *Registry {
	return &Registry{surfaces: map[Handle]Surface{}}
}

// Mount 挂载一块表面并返回它的句柄。
func (r *Registry) Mount(s Surface) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	r.surfaces[r.next] = s
	return r.next
}

// Unmount 卸载句柄对应的表面。卸载不存在的句柄是空操作。
func (r *Registry) Unmount(h Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.surfaces, h)
}

// Resolve 把句柄解析为已挂载的表面。
func (r *Registry) Resolve(h Handle) (Surface, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.surfaces[h]
	if !ok {
		return nil, fmt.Errorf("句柄 %d 未挂载任何渲染表面", h)
	}
	return s, nil
}
