package sftpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"time"

	"github.com/pkg/sftp"
	"go.uber.org/zap"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"

	"enrollment-console/internal/config"
)

const dialTimeout = 20 * time.Second

var (
	ErrMissingCredentials = errors.New("sftp: missing env SFTP_HOST / SFTP_USER / SFTP_PASS")
	ErrNoKnownHosts       = errors.New("sftp: SFTP_KNOWN_HOSTS is required unless SFTP_INSECURE_IGNORE_HOST_KEY is set")
)

// UploadFile copies localPath to cfg.Dir/remoteFileName, creating the
// remote directory when missing. The server host key is checked against
// cfg.KnownHosts unless cfg.InsecureIgnoreHostKey is set.
func UploadFile(ctx context.Context, cfg config.SFTPConfig, localPath, remoteFileName string, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Host == "" || cfg.User == "" || cfg.Pass == "" {
		return ErrMissingCredentials
	}
	if cfg.Port <= 0 {
		cfg.Port = 22
	}
	if cfg.Dir == "" {
		cfg.Dir = "/"
	}

	cb, err := hostKeyCallback(cfg)
	if err != nil {
		return err
	}

	sshCfg := &ssh.ClientConfig{
		User:            cfg.User,
		Auth:            []ssh.AuthMethod{ssh.Password(cfg.Pass)},
		HostKeyCallback: cb,
		Timeout:         dialTimeout,
	}

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	type dialRes struct {
		client *ssh.Client
		err    error
	}
	ch := make(chan dialRes, 1)
	go func() {
		c, err := ssh.Dial("tcp", addr, sshCfg)
		ch <- dialRes{client: c, err: err}
	}()

	var sshClient *ssh.Client
	select {
	case <-ctx.Done():
		go func() {
			if r := <-ch; r.client != nil {
				r.client.Close()
			}
		}()
		return fmt.Errorf("sftp: dial canceled: %w", ctx.Err())
	case r := <-ch:
		if r.err != nil {
			return fmt.Errorf("sftp: dial error: %w", r.err)
		}
		sshClient = r.client
	}
	defer sshClient.Close()

	sftpCli, err := sftp.NewClient(sshClient)
	if err != nil {
		return fmt.Errorf("sftp: new client: %w", err)
	}
	defer sftpCli.Close()

	if err := sftpCli.MkdirAll(cfg.Dir); err != nil {
		return fmt.Errorf("sftp: mkdir %s: %w", cfg.Dir, err)
	}

	src, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("sftp: open local file: %w", err)
	}
	defer src.Close()

	remotePath := path.Join(cfg.Dir, remoteFileName)
	dst, err := sftpCli.Create(remotePath)
	if err != nil {
		return fmt.Errorf("sftp: create remote file: %w", err)
	}
	defer dst.Close()

	n, err := io.Copy(dst, src)
	if err != nil {
		return fmt.Errorf("sftp: upload copy: %w", err)
	}

	logger.Info("report uploaded",
		zap.String("host", addr),
		zap.String("path", remotePath),
		zap.Int64("bytes", n),
	)
	return nil
}

func hostKeyCallback(cfg config.SFTPConfig) (ssh.HostKeyCallback, error) {
	if cfg.InsecureIgnoreHostKey {
		return ssh.InsecureIgnoreHostKey(), nil
	}
	if cfg.KnownHosts == "" {
		return nil, ErrNoKnownHosts
	}
	cb, err := knownhosts.New(cfg.KnownHosts)
	if err != nil {
		return nil, fmt.Errorf("sftp: known hosts: %w", err)
	}
	return cb, nil
}
