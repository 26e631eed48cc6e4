package discovery

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	clientv3 "go.etcd.io/etcd/client/v3"

	"github.com/example/joyashop/pkg/config"
)

// Registry announces this API server in etcd so the storefront and admin
// deployments can find it. Registration is lease-based; the entry expires on
// its own if the process dies.
type Registry struct {
	client *clientv3.Client
	config *config.EtcdConfig
}

type Instance struct {
	Name string
	Host string
	Port int
}

func NewRegistry(cfg *config.EtcdConfig) (*Registry, error) {
	cli, err := clientv3.New(clientv3.Config{
		Endpoints:   cfg.Endpoints,
		DialTimeout: cfg.DialTimeout,
	})
	if err != nil {
		return nil, errors.Wrap(err, "connect to etcd")
	}
	return &Registry{client: cli, config: cfg}, nil
}

func (r *Registry) Register(ctx context.Context, instance Instance) error {
	key := instanceKey(r.config.Prefix, instance)
	value := fmt.Sprintf("%s:%d", instance.Host, instance.Port)

	lease, err := r.client.Grant(ctx, 30)
	if err != nil {
		return errors.Wrap(err, "create lease")
	}
	if _, err := r.client.Put(ctx, key, value, clientv3.WithLease(lease.ID)); err != nil {
		return errors.Wrap(err, "register instance")
	}

	ch, err := r.client.KeepAlive(ctx, lease.ID)
	if err != nil {
		return errors.Wrap(err, "keep lease alive")
	}
	go func() {
		for range ch {
		}
	}()
	return nil
}

func (r *Registry) Deregister(ctx context.Context, instance Instance) error {
	_, err := r.client.Delete(ctx, instanceKey(r.config.Prefix, instance))
	return errors.Wrap(err, "deregister instance")
}

func (r *Registry) Close() error {
	return r.client.Close()
}

func instanceKey(prefix string, instance Instance) string {
	return fmt.Sprintf("%s%s/%s:%d", prefix, instance.Name, instance.Host, instance.Port)
}
