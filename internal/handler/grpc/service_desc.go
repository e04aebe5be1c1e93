package grpc

import (
	"context"

	"github.com/MKhiriev/go-vault-keeper/models"
	"google.golang.org/grpc"
)

const serviceName = "vault.v1.VaultService"

// Full method names.
const (
	MethodCreateVault        = "/" + serviceName + "/CreateVault"
	MethodCreateReceiptToken = "/" + serviceName + "/CreateReceiptToken"
	MethodDeposit            = "/" + serviceName + "/Deposit"
	MethodWithdraw           = "/" + serviceName + "/Withdraw"
	MethodGetVault           = "/" + serviceName + "/GetVault"
)

// publicMethods are served without a signer token.
var publicMethods = map[string]bool{
	MethodGetVault: true,
}

// VaultServer is the server API of vault.v1.VaultService.
type VaultServer interface {
	CreateVault(context.Context, *models.CreateVaultRequest) (*models.Vault, error)
	CreateReceiptToken(context.Context, *models.CreateReceiptTokenRequest) (*models.Mint, error)
	Deposit(context.Context, *models.DepositRequest) (*models.DepositResult, error)
	Withdraw(context.Context, *models.WithdrawRequest) (*models.WithdrawResult, error)
	GetVault(context.Context, *models.GetVaultRequest) (*models.VaultView, error)
}

// unaryHandler adapts a typed VaultServer method to a grpc.MethodDesc handler.
func unaryHandler[Req, Resp any](fullMethod string, call func(VaultServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(VaultServer), ctx, in)
		}

		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(VaultServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var VaultServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*VaultServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateVault", Handler: unaryHandler(MethodCreateVault, VaultServer.CreateVault)},
		{MethodName: "CreateReceiptToken", Handler: unaryHandler(MethodCreateReceiptToken, VaultServer.CreateReceiptToken)},
		{MethodName: "Deposit", Handler: unaryHandler(MethodDeposit, VaultServer.Deposit)},
		{MethodName: "Withdraw", Handler: unaryHandler(MethodWithdraw, VaultServer.Withdraw)},
		{MethodName: "GetVault", Handler: unaryHandler(MethodGetVault, VaultServer.GetVault)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: serviceName,
}
