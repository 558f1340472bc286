package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

const (
	AuthServiceName          = "lostfound.Auth"
	AccountServiceName       = "lostfound.Account"
	ItemsServiceName         = "lostfound.Items"
	NotificationsServiceName = "lostfound.Notifications"
)

const (
	AuthRegisterMethod = "/lostfound.Auth/Register"
	AuthLoginMethod    = "/lostfound.Auth/Login"
	AuthRefreshMethod  = "/lostfound.Auth/Refresh"
	AuthLogoutMethod   = "/lostfound.Auth/Logout"

	AccountGetMeMethod        = "/lostfound.Account/GetMe"
	AccountUploadAvatarMethod = "/lostfound.Account/UploadAvatar"
	AccountUpdateMeMethod     = "/lostfound.Account/UpdateMe"
	AccountDeleteMeMethod     = "/lostfound.Account/DeleteMe"

	ItemsListMineMethod = "/lostfound.Items/ListMine"
	ItemsCreateMethod   = "/lostfound.Items/Create"
	ItemsDeleteMethod   = "/lostfound.Items/Delete"

	NotificationsMatchMethod = "/lostfound.Notifications/Match"
	NotificationsListMethod  = "/lostfound.Notifications/List"
)

// AuthServer is the public part of the API; its methods are called without a token.
type AuthServer interface {
	Register(ctx context.Context, req *RegisterRequest) (*User, error)
	Login(ctx context.Context, req *LoginRequest) (*TokenPair, error)
	Refresh(ctx context.Context, req *RefreshRequest) (*TokenPair, error)
	Logout(ctx context.Context, req *RefreshRequest) (*emptypb.Empty, error)
}

// AccountServer manages the caller's own account.
type AccountServer interface {
	GetMe(ctx context.Context, req *emptypb.Empty) (*User, error)
	UploadAvatar(ctx context.Context, req *UploadAvatarRequest) (*UploadAvatarResponse, error)
	UpdateMe(ctx context.Context, req *UpdateMeRequest) (*User, error)
	DeleteMe(ctx context.Context, req *emptypb.Empty) (*emptypb.Empty, error)
}

// ItemsServer manages the caller's items.
type ItemsServer interface {
	ListMine(ctx context.Context, req *emptypb.Empty) (*ItemList, error)
	Create(ctx context.Context, req *CreateItemRequest) (*Item, error)
	Delete(ctx context.Context, req *ItemRequest) (*emptypb.Empty, error)
}

// NotificationsServer computes and lists match notifications.
type NotificationsServer interface {
	Match(ctx context.Context, req *MatchRequest) (*MatchResponse, error)
	List(ctx context.Context, req *emptypb.Empty) (*NotificationList, error)
}

// unary adapts a typed method to a grpc.MethodDesc handler.
func unary[S, Req, Resp any](
	fullMethod string,
	call func(S, context.Context, *Req) (*Resp, error),
) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(S), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(S), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var AuthServiceDesc = grpc.ServiceDesc{
	ServiceName: AuthServiceName,
	HandlerType: (*AuthServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Register", Handler: unary(AuthRegisterMethod, AuthServer.Register)},
		{MethodName: "Login", Handler: unary(AuthLoginMethod, AuthServer.Login)},
		{MethodName: "Refresh", Handler: unary(AuthRefreshMethod, AuthServer.Refresh)},
		{MethodName: "Logout", Handler: unary(AuthLogoutMethod, AuthServer.Logout)},
	},
	Metadata: "lostfound.json",
}

var AccountServiceDesc = grpc.ServiceDesc{
	ServiceName: AccountServiceName,
	HandlerType: (*AccountServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetMe", Handler: unary(AccountGetMeMethod, AccountServer.GetMe)},
		{MethodName: "UploadAvatar", Handler: unary(AccountUploadAvatarMethod, AccountServer.UploadAvatar)},
		{MethodName: "UpdateMe", Handler: unary(AccountUpdateMeMethod, AccountServer.UpdateMe)},
		{MethodName: "DeleteMe", Handler: unary(AccountDeleteMeMethod, AccountServer.DeleteMe)},
	},
	Metadata: "lostfound.json",
}

var ItemsServiceDesc = grpc.ServiceDesc{
	ServiceName: ItemsServiceName,
	HandlerType: (*ItemsServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListMine", Handler: unary(ItemsListMineMethod, ItemsServer.ListMine)},
		{MethodName: "Create", Handler: unary(ItemsCreateMethod, ItemsServer.Create)},
		{MethodName: "Delete", Handler: unary(ItemsDeleteMethod, ItemsServer.Delete)},
	},
	Metadata: "lostfound.json",
}

var NotificationsServiceDesc = grpc.ServiceDesc{
	ServiceName: NotificationsServiceName,
	HandlerType: (*NotificationsServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Match", Handler: unary(NotificationsMatchMethod, NotificationsServer.Match)},
		{MethodName: "List", Handler: unary(NotificationsListMethod, NotificationsServer.List)},
	},
	Metadata: "lostfound.json",
}

func RegisterAuthServer(s grpc.ServiceRegistrar, srv AuthServer) {
	s.RegisterService(&AuthServiceDesc, srv)
}

func RegisterAccountServer(s grpc.ServiceRegistrar, srv AccountServer) {
	s.RegisterService(&AccountServiceDesc, srv)
}

func RegisterItemsServer(s grpc.ServiceRegistrar, srv ItemsServer) {
	s.RegisterService(&ItemsServiceDesc, srv)
}

func RegisterNotificationsServer(s grpc.ServiceRegistrar, srv NotificationsServer) {
	s.RegisterService(&NotificationsServiceDesc, srv)
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

type AuthClient struct {
	cc grpc.ClientConnInterface
}

func NewAuthClient(cc grpc.ClientConnInterface) *AuthClient {
	return &AuthClient{cc: cc}
}

func (c *AuthClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*User, error) {
	return invoke[User](ctx, c.cc, AuthRegisterMethod, in, opts)
}

func (c *AuthClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*TokenPair, error) {
	return invoke[TokenPair](ctx, c.cc, AuthLoginMethod, in, opts)
}

func (c *AuthClient) Refresh(ctx context.Context, in *RefreshRequest, opts ...grpc.CallOption) (*TokenPair, error) {
	return invoke[TokenPair](ctx, c.cc, AuthRefreshMethod, in, opts)
}

func (c *AuthClient) Logout(ctx context.Context, in *RefreshRequest, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, AuthLogoutMethod, in, opts)
}

type AccountClient struct {
	cc grpc.ClientConnInterface
}

func NewAccountClient(cc grpc.ClientConnInterface) *AccountClient {
	return &AccountClient{cc: cc}
}

func (c *AccountClient) GetMe(ctx context.Context, opts ...grpc.CallOption) (*User, error) {
	return invoke[User](ctx, c.cc, AccountGetMeMethod, &emptypb.Empty{}, opts)
}

func (c *AccountClient) UploadAvatar(ctx context.Context, in *UploadAvatarRequest, opts ...grpc.CallOption) (*UploadAvatarResponse, error) {
	return invoke[UploadAvatarResponse](ctx, c.cc, AccountUploadAvatarMethod, in, opts)
}

func (c *AccountClient) UpdateMe(ctx context.Context, in *UpdateMeRequest, opts ...grpc.CallOption) (*User, error) {
	return invoke[User](ctx, c.cc, AccountUpdateMeMethod, in, opts)
}

func (c *AccountClient) DeleteMe(ctx context.Context, opts ...grpc.CallOption) error {
	_, err := invoke[emptypb.Empty](ctx, c.cc, AccountDeleteMeMethod, &emptypb.Empty{}, opts)
	return err
}

type ItemsClient struct {
	cc grpc.ClientConnInterface
}

func NewItemsClient(cc grpc.ClientConnInterface) *ItemsClient {
	return &ItemsClient{cc: cc}
}

func (c *ItemsClient) ListMine(ctx context.Context, opts ...grpc.CallOption) (*ItemList, error) {
	return invoke[ItemList](ctx, c.cc, ItemsListMineMethod, &emptypb.Empty{}, opts)
}

func (c *ItemsClient) Create(ctx context.Context, in *CreateItemRequest, opts ...grpc.CallOption) (*Item, error) {
	return invoke[Item](ctx, c.cc, ItemsCreateMethod, in, opts)
}

func (c *ItemsClient) Delete(ctx context.Context, in *ItemRequest, opts ...grpc.CallOption) error {
	_, err := invoke[emptypb.Empty](ctx, c.cc, ItemsDeleteMethod, in, opts)
	return err
}

type NotificationsClient struct {
	cc grpc.ClientConnInterface
}

func NewNotificationsClient(cc grpc.ClientConnInterface) *NotificationsClient {
	return &NotificationsClient{cc: cc}
}

func (c *NotificationsClient) Match(ctx context.Context, in *MatchRequest, opts ...grpc.CallOption) (*MatchResponse, error) {
	return invoke[MatchResponse](ctx, c.cc, NotificationsMatchMethod, in, opts)
}

func (c *NotificationsClient) List(ctx context.Context, opts ...grpc.CallOption) (*NotificationList, error) {
	return invoke[NotificationList](ctx, c.cc, NotificationsListMethod, &emptypb.Empty{}, opts)
}
