package grpc

import (
	"context"
	"time"

	"github.com/MKhiriev/go-vault-keeper/internal/utils"
	"github.com/MKhiriev/go-vault-keeper/models"
	"github.com/gagliardetto/solana-go"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// VaultClient calls vault.v1.VaultService over cc.
type VaultClient struct {
	cc grpc.ClientConnInterface
}

// NewVaultClient wraps cc with typed calls for every vault method. Requests
// are encoded with [Codec].
func NewVaultClient(cc grpc.ClientConnInterface) *VaultClient {
	return &VaultClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts ...grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.ForceCodec(Codec{})}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *VaultClient) CreateVault(ctx context.Context, in *models.CreateVaultRequest, opts ...grpc.CallOption) (*models.Vault, error) {
	return invoke[models.Vault](ctx, c.cc, MethodCreateVault, in, opts...)
}

func (c *VaultClient) CreateReceiptToken(ctx context.Context, in *models.CreateReceiptTokenRequest, opts ...grpc.CallOption) (*models.Mint, error) {
	return invoke[models.Mint](ctx, c.cc, MethodCreateReceiptToken, in, opts...)
}

func (c *VaultClient) Deposit(ctx context.Context, in *models.DepositRequest, opts ...grpc.CallOption) (*models.DepositResult, error) {
	return invoke[models.DepositResult](ctx, c.cc, MethodDeposit, in, opts...)
}

func (c *VaultClient) Withdraw(ctx context.Context, in *models.WithdrawRequest, opts ...grpc.CallOption) (*models.WithdrawResult, error) {
	return invoke[models.WithdrawResult](ctx, c.cc, MethodWithdraw, in, opts...)
}

func (c *VaultClient) GetVault(ctx context.Context, in *models.GetVaultRequest, opts ...grpc.CallOption) (*models.VaultView, error) {
	return invoke[models.VaultView](ctx, c.cc, MethodGetVault, in, opts...)
}

// SignerInterceptor signs every outgoing call with key. Each token covers the
// JSON encoding of its request and lives for ttl.
func SignerInterceptor(key solana.PrivateKey, ttl time.Duration) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		if publicMethods[method] {
			return invoker(ctx, method, req, reply, cc, opts...)
		}

		payload, err := Codec{}.Marshal(req)
		if err != nil {
			return err
		}
		token, err := utils.GenerateSignerToken(key, payload, ttl)
		if err != nil {
			return err
		}

		ctx = metadata.AppendToOutgoingContext(ctx, authorizationKey, "Bearer "+token)
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}
